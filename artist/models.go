package artist

import "artspace/artwork"

// Artist is the domain representation of an artist profile.
type Artist struct {
	ID           int64
	Name         string
	Bio          *string
	ContactEmail *string
	Phone        *string
}

// Profile bundles an artist with their artworks for detail views.
type Profile struct {
	Artist
	Artworks []artwork.Artwork
}

// SaveParams contains write parameters for creating or updating artists.
type SaveParams struct {
	Name         string  `json:"artist_name"`
	Bio          *string `json:"bio"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
}
