package booking

import "time"

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking is the domain representation of an artwork booking. The artwork,
// artist and user fields are joined in on reads; ArtworkID is nullable
// because deleting an artwork detaches rather than deletes its bookings.
type Booking struct {
	ID                  int64
	Reference           string
	UserID              int64
	ArtworkID           *int64
	CustomerName        string
	Email               string
	Phone               string
	PreferredDate       string
	PreferredTime       *string
	DeliveryAddress     string
	SpecialInstructions *string
	TotalAmount         float64
	Status              Status
	CreatedAt           time.Time

	ArtworkTitle *string
	ImageURL     *string
	ArtistName   *string
	Username     *string
	UserEmail    *string
}

// CreateRequest contains booking data supplied by callers. The booking owner
// comes from the verified token, never from the body.
type CreateRequest struct {
	ArtworkID           int64   `json:"artwork_id"`
	CustomerName        string  `json:"customer_name"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	PreferredDate       string  `json:"preferred_date"`
	PreferredTime       *string `json:"preferred_time"`
	DeliveryAddress     string  `json:"delivery_address"`
	SpecialInstructions *string `json:"special_instructions"`
	TotalAmount         float64 `json:"total_amount"`
}
