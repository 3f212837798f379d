package artist

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"artspace/artwork"
)

// ErrInvalidInput signals a create/update request without an artist name.
var ErrInvalidInput = errors.New("artist: artist_name is required")

// ArtworkLister is the slice of the artwork service the profile view needs.
type ArtworkLister interface {
	ByArtist(ctx context.Context, artistID int64) ([]artwork.Artwork, error)
}

// Service exposes business-level artist operations.
type Service struct {
	repo     Repository
	artworks ArtworkLister
}

// NewService builds a Service using the provided repository and artwork lister.
func NewService(repo Repository, artworks ArtworkLister) *Service {
	return &Service{repo: repo, artworks: artworks}
}

// List returns all artists.
func (s *Service) List(ctx context.Context) ([]Artist, error) {
	return s.repo.List(ctx)
}

// Profile returns an artist together with their artworks. The two reads are
// independent, so they run concurrently.
func (s *Service) Profile(ctx context.Context, id int64) (Profile, error) {
	var (
		a     Artist
		works []artwork.Artwork
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		works, err = s.artworks.ByArtist(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}

	return Profile{Artist: a, Artworks: works}, nil
}

// Create adds a new artist profile.
func (s *Service) Create(ctx context.Context, params SaveParams) (int64, error) {
	if params.Name == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.Create(ctx, params)
}

// Update overwrites an artist's attributes.
func (s *Service) Update(ctx context.Context, id int64, params SaveParams) (Artist, error) {
	if params.Name == "" {
		return Artist{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes an artist profile.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
