package httpapi

import (
	"errors"
	"net/http"
	"time"

	"artspace/booking"
)

type bookingResponse struct {
	BookingID           int64   `json:"booking_id"`
	Reference           string  `json:"reference"`
	UserID              int64   `json:"user_id"`
	ArtworkID           *int64  `json:"artwork_id"`
	CustomerName        string  `json:"customer_name"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	PreferredDate       string  `json:"preferred_date"`
	PreferredTime       *string `json:"preferred_time,omitempty"`
	DeliveryAddress     string  `json:"delivery_address"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
	TotalAmount         float64 `json:"total_amount"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	ArtworkTitle        *string `json:"artwork_title,omitempty"`
	ImageURL            *string `json:"image_url,omitempty"`
	ArtistName          *string `json:"artist_name,omitempty"`
	Username            *string `json:"username,omitempty"`
	UserEmail           *string `json:"user_email,omitempty"`
}

func newBookingResponse(b booking.Booking) bookingResponse {
	return bookingResponse{
		BookingID:           b.ID,
		Reference:           b.Reference,
		UserID:              b.UserID,
		ArtworkID:           b.ArtworkID,
		CustomerName:        b.CustomerName,
		Email:               b.Email,
		Phone:               b.Phone,
		PreferredDate:       b.PreferredDate,
		PreferredTime:       b.PreferredTime,
		DeliveryAddress:     b.DeliveryAddress,
		SpecialInstructions: b.SpecialInstructions,
		TotalAmount:         b.TotalAmount,
		Status:              string(b.Status),
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
		ArtworkTitle:        b.ArtworkTitle,
		ImageURL:            b.ImageURL,
		ArtistName:          b.ArtistName,
		Username:            b.Username,
		UserEmail:           b.UserEmail,
	}
}

func newBookingList(bookings []booking.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	return out
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req booking.CreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, ref, err := s.bookings.Create(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, booking.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Please provide all required fields")
			return
		}
		s.internalError(w, err, "Error creating booking")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{
		"booking_id": id,
		"reference":  ref,
	})
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	bookings, err := s.bookings.ForUser(r.Context(), claims.UserID)
	if err != nil {
		s.internalError(w, err, "Error fetching bookings")
		return
	}

	writeData(w, http.StatusOK, newBookingList(bookings))
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := s.bookings.GetForUser(r.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		s.internalError(w, err, "Error fetching booking")
		return
	}

	writeData(w, http.StatusOK, newBookingResponse(b))
}

func (s *Server) handleAllBookings(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	bookings, err := s.bookings.All(r.Context())
	if err != nil {
		s.internalError(w, err, "Error fetching bookings")
		return
	}

	writeData(w, http.StatusOK, newBookingList(bookings))
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := s.bookings.UpdateStatus(r.Context(), id, booking.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status. Must be: pending, confirmed, completed, or cancelled")
		case errors.Is(err, booking.ErrNotFound):
			writeError(w, http.StatusNotFound, "Booking not found")
		default:
			s.internalError(w, err, "Error updating booking status")
		}
		return
	}

	writeData(w, http.StatusOK, newBookingResponse(b))
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := s.bookings.CancelOwn(r.Context(), claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			writeError(w, http.StatusNotFound, "Booking not found or you do not have permission to cancel it")
		case errors.Is(err, booking.ErrNotCancellable):
			writeError(w, http.StatusBadRequest, "Only pending bookings can be cancelled")
		default:
			s.internalError(w, err, "Error cancelling booking")
		}
		return
	}

	writeData(w, http.StatusOK, newBookingResponse(b))
}
