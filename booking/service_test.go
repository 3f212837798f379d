package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		ArtworkID:       7,
		CustomerName:    "Alice",
		Email:           "alice@example.com",
		Phone:           "555-0142",
		PreferredDate:   "2026-09-15",
		DeliveryAddress: "12 Gallery Lane",
		TotalAmount:     250,
	}
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepository()
	notifier := &captureNotifier{}
	svc := NewService(repo, notifier, nil).
		WithReferenceGenerator(func() string { return "ref-1" })

	id, ref, err := svc.Create(context.Background(), 3, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "ref-1", ref)

	stored := repo.bookings[id]
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, int64(3), stored.UserID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "alice@example.com", notifier.sent[0].To)
	assert.Equal(t, "ref-1", notifier.sent[0].Reference)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(newFakeRepository(), nil, nil)

	req := validCreateRequest()
	req.DeliveryAddress = ""
	_, _, err := svc.Create(context.Background(), 3, req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreate_NotifierFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &captureNotifier{err: errors.New("smtp down")}, nil)

	id, _, err := svc.Create(context.Background(), 3, validCreateRequest())
	require.NoError(t, err)
	assert.Contains(t, repo.bookings, id)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, nil)
	id := repo.seed(3, StatusPending)

	_, err := svc.UpdateStatus(context.Background(), id, Status("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	b, err := svc.UpdateStatus(context.Background(), id, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)

	_, err = svc.UpdateStatus(context.Background(), 999, StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOwn(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	pending := repo.seed(3, StatusPending)
	confirmed := repo.seed(3, StatusConfirmed)

	b, err := svc.CancelOwn(ctx, 3, pending)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)

	_, err = svc.CancelOwn(ctx, 3, confirmed)
	assert.ErrorIs(t, err, ErrNotCancellable)

	// Another user's booking is invisible to the caller.
	other := repo.seed(4, StatusPending)
	_, err = svc.CancelOwn(ctx, 3, other)
	assert.ErrorIs(t, err, ErrNotFound)
}

type captureNotifier struct {
	sent []Confirmation
	err  error
}

func (c *captureNotifier) BookingConfirmed(conf Confirmation) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, conf)
	return nil
}

type fakeRepository struct {
	bookings map[int64]Booking
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[int64]Booking), nextID: 1}
}

func (f *fakeRepository) seed(userID int64, status Status) int64 {
	id := f.nextID
	f.nextID++
	f.bookings[id] = Booking{ID: id, UserID: userID, Status: status}
	return id
}

func (f *fakeRepository) Create(ctx context.Context, params CreateParams) (int64, error) {
	id := f.nextID
	f.nextID++
	artworkID := params.ArtworkID
	f.bookings[id] = Booking{
		ID:              id,
		Reference:       params.Reference,
		UserID:          params.UserID,
		ArtworkID:       &artworkID,
		CustomerName:    params.CustomerName,
		Email:           params.Email,
		Phone:           params.Phone,
		PreferredDate:   params.PreferredDate,
		DeliveryAddress: params.DeliveryAddress,
		TotalAmount:     params.TotalAmount,
		Status:          StatusPending,
	}
	return id, nil
}

func (f *fakeRepository) ByUser(ctx context.Context, userID int64) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetForUser(ctx context.Context, userID, bookingID int64) (Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.UserID != userID {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepository) All(ctx context.Context) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, bookingID int64, status Status) (Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return Booking{}, ErrNotFound
	}
	b.Status = status
	f.bookings[bookingID] = b
	return b, nil
}
