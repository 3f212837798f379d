package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals that the booking does not exist (or, for user-scoped
// lookups, does not belong to the user).
var ErrNotFound = errors.New("booking: not found")

// CreateParams contains write parameters for creating bookings.
type CreateParams struct {
	Reference           string
	UserID              int64
	ArtworkID           int64
	CustomerName        string
	Email               string
	Phone               string
	PreferredDate       string
	PreferredTime       *string
	DeliveryAddress     string
	SpecialInstructions *string
	TotalAmount         float64
}

// Repository handles data access for bookings.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (int64, error)
	ByUser(ctx context.Context, userID int64) ([]Booking, error)
	GetForUser(ctx context.Context, userID, bookingID int64) (Booking, error)
	All(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status Status) (Booking, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed booking repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const bookingColumns = `
	b.booking_id, b.reference, b.user_id, b.artwork_id, b.customer_name, b.email,
	b.phone, b.preferred_date, b.preferred_time, b.delivery_address,
	b.special_instructions, b.total_amount, b.status, b.created_at,
	a.title, a.image_url, ar.artist_name
`

const bookingJoins = `
	FROM bookings b
	LEFT JOIN artworks a ON b.artwork_id = a.artwork_id
	LEFT JOIN artists ar ON a.artist_id = ar.artist_id
`

// Create inserts a new pending booking and returns its id.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (int64, error) {
	const insertSQL = `
		INSERT INTO bookings (
			reference, user_id, artwork_id, customer_name, email, phone,
			preferred_date, preferred_time, delivery_address,
			special_instructions, total_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending')
		RETURNING booking_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, insertSQL,
		params.Reference, params.UserID, params.ArtworkID, params.CustomerName,
		params.Email, params.Phone, params.PreferredDate, params.PreferredTime,
		params.DeliveryAddress, params.SpecialInstructions, params.TotalAmount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("booking: create: %w", err)
	}
	return id, nil
}

// ByUser returns a user's bookings, newest first.
func (r *PGRepository) ByUser(ctx context.Context, userID int64) ([]Booking, error) {
	const selectSQL = `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, selectSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("booking: by user: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows, false)
}

// GetForUser returns a single booking scoped to its owner.
func (r *PGRepository) GetForUser(ctx context.Context, userID, bookingID int64) (Booking, error) {
	const selectSQL = `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.booking_id = $1 AND b.user_id = $2
	`

	rows, err := r.pool.Query(ctx, selectSQL, bookingID, userID)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: get for user: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows, false)
	if err != nil {
		return Booking{}, err
	}
	if len(bookings) == 0 {
		return Booking{}, ErrNotFound
	}
	return bookings[0], nil
}

// All returns every booking with user details joined in, newest first.
func (r *PGRepository) All(ctx context.Context) ([]Booking, error) {
	const selectSQL = `SELECT ` + bookingColumns + `,
		u.username, u.email
	` + bookingJoins + `
		LEFT JOIN users u ON b.user_id = u.user_id
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("booking: all: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows, true)
}

// UpdateStatus moves a booking to the given status.
func (r *PGRepository) UpdateStatus(ctx context.Context, bookingID int64, status Status) (Booking, error) {
	const updateSQL = `
		UPDATE bookings
		SET status = $1
		WHERE booking_id = $2
		RETURNING booking_id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, updateSQL, status, bookingID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("booking: update status: %w", err)
	}

	const selectSQL = `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.booking_id = $1
	`
	rows, err := r.pool.Query(ctx, selectSQL, id)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: reload: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows, false)
	if err != nil {
		return Booking{}, err
	}
	if len(bookings) == 0 {
		return Booking{}, ErrNotFound
	}
	return bookings[0], nil
}

func collectBookings(rows pgx.Rows, withUser bool) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		dest := []any{
			&b.ID, &b.Reference, &b.UserID, &b.ArtworkID, &b.CustomerName, &b.Email,
			&b.Phone, &b.PreferredDate, &b.PreferredTime, &b.DeliveryAddress,
			&b.SpecialInstructions, &b.TotalAmount, &b.Status, &b.CreatedAt,
			&b.ArtworkTitle, &b.ImageURL, &b.ArtistName,
		}
		if withUser {
			dest = append(dest, &b.Username, &b.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("booking: scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking: rows: %w", err)
	}
	return out, nil
}
