package artist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that the artist does not exist.
	ErrNotFound = errors.New("artist: not found")
	// ErrHasArtworks signals a delete blocked by referencing artworks.
	ErrHasArtworks = errors.New("artist: cannot delete artist with existing artworks")
)

// Repository handles data access for artist profiles.
type Repository interface {
	List(ctx context.Context) ([]Artist, error)
	GetByID(ctx context.Context, id int64) (Artist, error)
	Create(ctx context.Context, params SaveParams) (int64, error)
	Update(ctx context.Context, id int64, params SaveParams) (Artist, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed artist repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all artists ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]Artist, error) {
	const selectSQL = `
		SELECT artist_id, artist_name, bio, contact_email, phone
		FROM artists
		ORDER BY artist_id
	`

	rows, err := r.pool.Query(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("artist: list: %w", err)
	}
	defer rows.Close()

	var out []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.ContactEmail, &a.Phone); err != nil {
			return nil, fmt.Errorf("artist: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("artist: rows: %w", err)
	}
	return out, nil
}

// GetByID retrieves an artist by id.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (Artist, error) {
	const selectSQL = `
		SELECT artist_id, artist_name, bio, contact_email, phone
		FROM artists
		WHERE artist_id = $1
	`

	var a Artist
	err := r.pool.QueryRow(ctx, selectSQL, id).Scan(&a.ID, &a.Name, &a.Bio, &a.ContactEmail, &a.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ErrNotFound
		}
		return Artist{}, fmt.Errorf("artist: get by id: %w", err)
	}
	return a, nil
}

// Create inserts a new artist and returns its id.
func (r *PGRepository) Create(ctx context.Context, params SaveParams) (int64, error) {
	const insertSQL = `
		INSERT INTO artists (artist_name, bio, contact_email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING artist_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, insertSQL, params.Name, params.Bio, params.ContactEmail, params.Phone).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("artist: create: %w", err)
	}
	return id, nil
}

// Update overwrites an artist's attributes.
func (r *PGRepository) Update(ctx context.Context, id int64, params SaveParams) (Artist, error) {
	const updateSQL = `
		UPDATE artists
		SET artist_name = $1, bio = $2, contact_email = $3, phone = $4
		WHERE artist_id = $5
		RETURNING artist_id, artist_name, bio, contact_email, phone
	`

	var a Artist
	err := r.pool.QueryRow(ctx, updateSQL, params.Name, params.Bio, params.ContactEmail, params.Phone, id).
		Scan(&a.ID, &a.Name, &a.Bio, &a.ContactEmail, &a.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ErrNotFound
		}
		return Artist{}, fmt.Errorf("artist: update: %w", err)
	}
	return a, nil
}

// Delete removes an artist, refusing while artworks still reference them.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	const countSQL = `SELECT COUNT(*) FROM artworks WHERE artist_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, countSQL, id).Scan(&count); err != nil {
		return fmt.Errorf("artist: count artworks: %w", err)
	}
	if count > 0 {
		return ErrHasArtworks
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE artist_id = $1`, id)
	if err != nil {
		return fmt.Errorf("artist: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
