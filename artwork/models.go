package artwork

import "time"

// Artwork is the domain representation of a catalog piece. ArtistName is
// joined in on reads; the artist bio and contact fields are only populated on
// single-artwork lookups.
type Artwork struct {
	ID           int64
	Title        string
	Description  string
	Category     string
	Price        float64
	ImageURL     string
	ArtistID     int64
	ArtistName   *string
	ArtistBio    *string
	ArtistEmail  *string
	ArtistPhone  *string
	IsBestseller bool
	Views        int64
	CreatedAt    time.Time
}

// Sort selects a listing order.
type Sort string

const (
	SortPriceLow   Sort = "price_low"
	SortPriceHigh  Sort = "price_high"
	SortBestseller Sort = "bestseller"
	SortNewest     Sort = "newest"
)

// ParseSort maps a query parameter to a listing order, defaulting to newest.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceLow, SortPriceHigh, SortBestseller, SortNewest:
		return Sort(s)
	default:
		return SortNewest
	}
}

// SaveParams contains write parameters for creating or updating artworks.
type SaveParams struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	ArtistID     int64   `json:"artist_id"`
	IsBestseller bool    `json:"is_bestseller"`
}
