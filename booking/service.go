package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingFields signals an incomplete booking request.
	ErrMissingFields = errors.New("booking: artwork, customer name, email, phone, preferred date and delivery address are required")
	// ErrInvalidStatus signals a status outside the fixed set.
	ErrInvalidStatus = errors.New("booking: invalid status, must be pending, confirmed, completed or cancelled")
	// ErrNotCancellable signals a cancel attempt on a non-pending booking.
	ErrNotCancellable = errors.New("booking: only pending bookings can be cancelled")
)

// Confirmation is the notification payload sent after a booking is created.
type Confirmation struct {
	To            string
	CustomerName  string
	Reference     string
	ArtworkID     int64
	PreferredDate string
	TotalAmount   float64
}

// Notifier delivers booking confirmations. A nil Notifier disables delivery.
type Notifier interface {
	BookingConfirmed(c Confirmation) error
}

// Service exposes business-level booking operations.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *logrus.Logger
	newRef   func() string
}

// NewService builds a Service using the provided repository and notifier.
func NewService(repo Repository, notifier Notifier, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		newRef:   func() string { return uuid.NewString() },
	}
}

// WithReferenceGenerator overrides booking reference generation, for tests.
func (s *Service) WithReferenceGenerator(gen func() string) *Service {
	s.newRef = gen
	return s
}

// Create records a pending booking for the user and sends a confirmation.
// Notification failures are logged, not surfaced: the booking is already
// committed by then.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (int64, string, error) {
	if req.ArtworkID == 0 || req.CustomerName == "" || req.Email == "" ||
		req.Phone == "" || req.PreferredDate == "" || req.DeliveryAddress == "" {
		return 0, "", ErrMissingFields
	}

	ref := s.newRef()
	id, err := s.repo.Create(ctx, CreateParams{
		Reference:           ref,
		UserID:              userID,
		ArtworkID:           req.ArtworkID,
		CustomerName:        req.CustomerName,
		Email:               req.Email,
		Phone:               req.Phone,
		PreferredDate:       req.PreferredDate,
		PreferredTime:       req.PreferredTime,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		TotalAmount:         req.TotalAmount,
	})
	if err != nil {
		return 0, "", err
	}

	s.log.Infof("booking %d created by user %d (ref %s)", id, userID, ref)

	if s.notifier != nil {
		confirmation := Confirmation{
			To:            req.Email,
			CustomerName:  req.CustomerName,
			Reference:     ref,
			ArtworkID:     req.ArtworkID,
			PreferredDate: req.PreferredDate,
			TotalAmount:   req.TotalAmount,
		}
		if err := s.notifier.BookingConfirmed(confirmation); err != nil {
			s.log.WithError(err).Warnf("failed to send confirmation for booking %d", id)
		}
	}

	return id, ref, nil
}

// ForUser returns a user's bookings.
func (s *Service) ForUser(ctx context.Context, userID int64) ([]Booking, error) {
	return s.repo.ByUser(ctx, userID)
}

// GetForUser returns a single booking scoped to its owner.
func (s *Service) GetForUser(ctx context.Context, userID, bookingID int64) (Booking, error) {
	return s.repo.GetForUser(ctx, userID, bookingID)
}

// All returns every booking. Callers must have passed the admin gate.
func (s *Service) All(ctx context.Context) ([]Booking, error) {
	return s.repo.All(ctx)
}

// UpdateStatus moves a booking to the given status. Callers must have passed
// the admin gate.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status Status) (Booking, error) {
	if !status.IsValid() {
		return Booking{}, ErrInvalidStatus
	}

	b, err := s.repo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return Booking{}, err
	}

	s.log.Infof("booking %d status changed to %s", bookingID, status)
	return b, nil
}

// CancelOwn cancels a user's own booking while it is still pending.
func (s *Service) CancelOwn(ctx context.Context, userID, bookingID int64) (Booking, error) {
	b, err := s.repo.GetForUser(ctx, userID, bookingID)
	if err != nil {
		return Booking{}, err
	}
	if b.Status != StatusPending {
		return Booking{}, fmt.Errorf("%w: status is %s", ErrNotCancellable, b.Status)
	}

	return s.repo.UpdateStatus(ctx, bookingID, StatusCancelled)
}
