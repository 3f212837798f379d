package artist

import (
	"context"
	"errors"
	"testing"

	"artspace/artwork"
)

type fakeRepository struct {
	artists map[int64]Artist
	getErr  error
}

func (f *fakeRepository) List(_ context.Context) ([]Artist, error) {
	out := make([]Artist, 0, len(f.artists))
	for _, a := range f.artists {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (Artist, error) {
	if f.getErr != nil {
		return Artist{}, f.getErr
	}
	a, ok := f.artists[id]
	if !ok {
		return Artist{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepository) Create(_ context.Context, params SaveParams) (int64, error) {
	id := int64(len(f.artists) + 1)
	f.artists[id] = Artist{ID: id, Name: params.Name}
	return id, nil
}

func (f *fakeRepository) Update(_ context.Context, id int64, params SaveParams) (Artist, error) {
	a, ok := f.artists[id]
	if !ok {
		return Artist{}, ErrNotFound
	}
	a.Name = params.Name
	f.artists[id] = a
	return a, nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.artists[id]; !ok {
		return ErrNotFound
	}
	delete(f.artists, id)
	return nil
}

type fakeLister struct {
	works []artwork.Artwork
	err   error
}

func (f *fakeLister) ByArtist(_ context.Context, _ int64) ([]artwork.Artwork, error) {
	return f.works, f.err
}

func TestService_Profile(t *testing.T) {
	repo := &fakeRepository{artists: map[int64]Artist{
		1: {ID: 1, Name: "Mira Shrestha"},
	}}
	lister := &fakeLister{works: []artwork.Artwork{
		{ID: 10, Title: "Sunrise", ArtistID: 1},
		{ID: 11, Title: "Monsoon", ArtistID: 1},
	}}
	svc := NewService(repo, lister)

	p, err := svc.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Name != "Mira Shrestha" {
		t.Fatalf("unexpected artist name %q", p.Name)
	}
	if len(p.Artworks) != 2 {
		t.Fatalf("expected 2 artworks, got %d", len(p.Artworks))
	}
}

func TestService_ProfileErrors(t *testing.T) {
	repo := &fakeRepository{artists: map[int64]Artist{}}
	svc := NewService(repo, &fakeLister{})

	if _, err := svc.Profile(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	repo.artists[1] = Artist{ID: 1, Name: "Mira Shrestha"}
	listErr := errors.New("query timeout")
	if _, err := svc.Profile(context.Background(), 1); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if _, err := NewService(repo, &fakeLister{err: listErr}).Profile(context.Background(), 1); !errors.Is(err, listErr) {
		t.Fatalf("expected lister error, got %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	repo := &fakeRepository{artists: map[int64]Artist{}}
	svc := NewService(repo, &fakeLister{})

	if _, err := svc.Create(context.Background(), SaveParams{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), SaveParams{Name: "Mira Shrestha"}); err != nil {
		t.Fatalf("valid create: %v", err)
	}
}
