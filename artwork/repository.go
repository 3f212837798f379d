package artwork

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals that the artwork does not exist.
var ErrNotFound = errors.New("artwork: not found")

// Repository handles data access for the artwork catalog.
type Repository interface {
	List(ctx context.Context, sort Sort) ([]Artwork, error)
	GetByID(ctx context.Context, id int64) (Artwork, error)
	IncrementViews(ctx context.Context, id int64) error
	ByArtist(ctx context.Context, artistID int64) ([]Artwork, error)
	Search(ctx context.Context, term string) ([]Artwork, error)
	Create(ctx context.Context, params SaveParams) (int64, error)
	Update(ctx context.Context, id int64, params SaveParams) (Artwork, error)
	Delete(ctx context.Context, id int64) error
	RefreshBestsellers(ctx context.Context, topN int) (int64, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed artwork repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const listColumns = `
	a.artwork_id, a.title, a.description, a.category, a.price, a.image_url,
	a.artist_id, ar.artist_name, a.is_bestseller, a.views, a.created_at
`

// List returns all artworks joined with their artist name, in the given order.
func (r *PGRepository) List(ctx context.Context, sort Sort) ([]Artwork, error) {
	query := `
		SELECT ` + listColumns + `
		FROM artworks a
		LEFT JOIN artists ar ON a.artist_id = ar.artist_id
	`

	switch sort {
	case SortPriceLow:
		query += ` ORDER BY a.price ASC`
	case SortPriceHigh:
		query += ` ORDER BY a.price DESC`
	case SortBestseller:
		query += ` ORDER BY a.is_bestseller DESC, a.views DESC`
	default:
		query += ` ORDER BY a.created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("artwork: list: %w", err)
	}
	defer rows.Close()

	return collectArtworks(rows)
}

// GetByID retrieves a single artwork with full artist details.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (Artwork, error) {
	const selectSQL = `
		SELECT ` + listColumns + `,
			ar.bio, ar.contact_email, ar.phone
		FROM artworks a
		LEFT JOIN artists ar ON a.artist_id = ar.artist_id
		WHERE a.artwork_id = $1
	`

	var a Artwork
	err := r.pool.QueryRow(ctx, selectSQL, id).Scan(
		&a.ID, &a.Title, &a.Description, &a.Category, &a.Price, &a.ImageURL,
		&a.ArtistID, &a.ArtistName, &a.IsBestseller, &a.Views, &a.CreatedAt,
		&a.ArtistBio, &a.ArtistEmail, &a.ArtistPhone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artwork{}, ErrNotFound
		}
		return Artwork{}, fmt.Errorf("artwork: get by id: %w", err)
	}

	return a, nil
}

// IncrementViews bumps the view counter for an artwork.
func (r *PGRepository) IncrementViews(ctx context.Context, id int64) error {
	const updateSQL = `UPDATE artworks SET views = views + 1 WHERE artwork_id = $1`
	if _, err := r.pool.Exec(ctx, updateSQL, id); err != nil {
		return fmt.Errorf("artwork: increment views: %w", err)
	}
	return nil
}

// ByArtist returns an artist's artworks, bestsellers and most-viewed first.
func (r *PGRepository) ByArtist(ctx context.Context, artistID int64) ([]Artwork, error) {
	const selectSQL = `
		SELECT ` + listColumns + `
		FROM artworks a
		LEFT JOIN artists ar ON a.artist_id = ar.artist_id
		WHERE a.artist_id = $1
		ORDER BY a.is_bestseller DESC, a.views DESC
	`

	rows, err := r.pool.Query(ctx, selectSQL, artistID)
	if err != nil {
		return nil, fmt.Errorf("artwork: by artist: %w", err)
	}
	defer rows.Close()

	return collectArtworks(rows)
}

// Search matches the term against title, description, artist name and category.
func (r *PGRepository) Search(ctx context.Context, term string) ([]Artwork, error) {
	const selectSQL = `
		SELECT ` + listColumns + `
		FROM artworks a
		LEFT JOIN artists ar ON a.artist_id = ar.artist_id
		WHERE a.title ILIKE $1 OR a.description ILIKE $1 OR
			ar.artist_name ILIKE $1 OR a.category ILIKE $1
	`

	rows, err := r.pool.Query(ctx, selectSQL, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("artwork: search: %w", err)
	}
	defer rows.Close()

	return collectArtworks(rows)
}

// Create inserts a new artwork and returns its id.
func (r *PGRepository) Create(ctx context.Context, params SaveParams) (int64, error) {
	const insertSQL = `
		INSERT INTO artworks (title, description, category, price, image_url, artist_id, is_bestseller)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING artwork_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, insertSQL,
		params.Title, params.Description, params.Category, params.Price,
		params.ImageURL, params.ArtistID, params.IsBestseller,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("artwork: create: %w", err)
	}
	return id, nil
}

// Update overwrites an artwork's attributes.
func (r *PGRepository) Update(ctx context.Context, id int64, params SaveParams) (Artwork, error) {
	const updateSQL = `
		UPDATE artworks
		SET title = $1, description = $2, category = $3, price = $4,
			image_url = $5, artist_id = $6, is_bestseller = $7
		WHERE artwork_id = $8
		RETURNING artwork_id
	`

	var updatedID int64
	err := r.pool.QueryRow(ctx, updateSQL,
		params.Title, params.Description, params.Category, params.Price,
		params.ImageURL, params.ArtistID, params.IsBestseller, id,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artwork{}, ErrNotFound
		}
		return Artwork{}, fmt.Errorf("artwork: update: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete removes an artwork. Existing bookings keep their row; their
// artwork join simply resolves to nothing afterwards.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	const deleteSQL = `DELETE FROM artworks WHERE artwork_id = $1`

	tag, err := r.pool.Exec(ctx, deleteSQL, id)
	if err != nil {
		return fmt.Errorf("artwork: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshBestsellers flags the topN most-viewed artworks as bestsellers and
// clears the flag on everything else. Returns the number of rows whose flag
// changed.
func (r *PGRepository) RefreshBestsellers(ctx context.Context, topN int) (int64, error) {
	const updateSQL = `
		UPDATE artworks
		SET is_bestseller = (artwork_id IN (
			SELECT artwork_id FROM artworks ORDER BY views DESC, artwork_id LIMIT $1
		))
		WHERE is_bestseller <> (artwork_id IN (
			SELECT artwork_id FROM artworks ORDER BY views DESC, artwork_id LIMIT $1
		))
	`

	tag, err := r.pool.Exec(ctx, updateSQL, topN)
	if err != nil {
		return 0, fmt.Errorf("artwork: refresh bestsellers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectArtworks(rows pgx.Rows) ([]Artwork, error) {
	var out []Artwork
	for rows.Next() {
		var a Artwork
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Category, &a.Price, &a.ImageURL,
			&a.ArtistID, &a.ArtistName, &a.IsBestseller, &a.Views, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("artwork: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("artwork: rows: %w", err)
	}
	return out, nil
}
