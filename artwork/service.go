package artwork

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// bestsellerCount is how many top-viewed artworks the nightly refresh flags.
const bestsellerCount = 10

// ErrInvalidInput signals a create/update request missing required fields.
var ErrInvalidInput = errors.New("artwork: title, positive price and artist_id are required")

// Service exposes business-level catalog operations.
type Service struct {
	repo Repository
	log  *logrus.Logger
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{repo: repo, log: log}
}

// List returns the catalog in the requested order.
func (s *Service) List(ctx context.Context, sort Sort) ([]Artwork, error) {
	return s.repo.List(ctx, sort)
}

// Get returns a single artwork and bumps its view counter. A failed counter
// update is logged but does not fail the read.
func (s *Service) Get(ctx context.Context, id int64) (Artwork, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Artwork{}, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.log.WithError(err).Warnf("failed to increment views for artwork %d", id)
	} else {
		a.Views++
	}

	return a, nil
}

// ByArtist returns an artist's artworks.
func (s *Service) ByArtist(ctx context.Context, artistID int64) ([]Artwork, error) {
	return s.repo.ByArtist(ctx, artistID)
}

// Search returns artworks matching the term.
func (s *Service) Search(ctx context.Context, term string) ([]Artwork, error) {
	return s.repo.Search(ctx, term)
}

// Create adds a new artwork to the catalog.
func (s *Service) Create(ctx context.Context, params SaveParams) (int64, error) {
	if err := validate(params); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, params)
	if err != nil {
		return 0, err
	}

	s.log.Infof("artwork created: %d (%s)", id, params.Title)
	return id, nil
}

// Update overwrites an artwork's attributes.
func (s *Service) Update(ctx context.Context, id int64, params SaveParams) (Artwork, error) {
	if err := validate(params); err != nil {
		return Artwork{}, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes an artwork from the catalog.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof("artwork deleted: %d", id)
	return nil
}

// RefreshBestsellers recomputes the bestseller flags from view counts.
func (s *Service) RefreshBestsellers(ctx context.Context) error {
	changed, err := s.repo.RefreshBestsellers(ctx, bestsellerCount)
	if err != nil {
		return err
	}
	s.log.Infof("bestseller refresh complete: %d artworks changed", changed)
	return nil
}

func validate(params SaveParams) error {
	if params.Title == "" || params.Price <= 0 || params.ArtistID == 0 {
		return ErrInvalidInput
	}
	return nil
}
