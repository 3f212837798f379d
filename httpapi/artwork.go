package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"artspace/artwork"
)

type artworkResponse struct {
	ArtworkID    int64   `json:"artwork_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	ArtistID     int64   `json:"artist_id"`
	ArtistName   *string `json:"artist_name,omitempty"`
	ArtistBio    *string `json:"artist_bio,omitempty"`
	ArtistEmail  *string `json:"artist_email,omitempty"`
	ArtistPhone  *string `json:"artist_phone,omitempty"`
	IsBestseller bool    `json:"is_bestseller"`
	Views        int64   `json:"views"`
	CreatedAt    string  `json:"created_at"`
}

func newArtworkResponse(a artwork.Artwork) artworkResponse {
	return artworkResponse{
		ArtworkID:    a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Category:     a.Category,
		Price:        a.Price,
		ImageURL:     a.ImageURL,
		ArtistID:     a.ArtistID,
		ArtistName:   a.ArtistName,
		ArtistBio:    a.ArtistBio,
		ArtistEmail:  a.ArtistEmail,
		ArtistPhone:  a.ArtistPhone,
		IsBestseller: a.IsBestseller,
		Views:        a.Views,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func newArtworkList(artworks []artwork.Artwork) []artworkResponse {
	out := make([]artworkResponse, 0, len(artworks))
	for _, a := range artworks {
		out = append(out, newArtworkResponse(a))
	}
	return out
}

// pathID extracts a numeric path variable, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (s *Server) handleListArtworks(w http.ResponseWriter, r *http.Request) {
	sort := artwork.ParseSort(r.URL.Query().Get("sort"))

	artworks, err := s.artworks.List(r.Context(), sort)
	if err != nil {
		s.internalError(w, err, "Error fetching artworks")
		return
	}

	list := newArtworkList(artworks)
	writeList(w, http.StatusOK, len(list), list)
}

func (s *Server) handleGetArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := s.artworks.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Artwork not found")
			return
		}
		s.internalError(w, err, "Error fetching artwork")
		return
	}

	writeData(w, http.StatusOK, newArtworkResponse(a))
}

func (s *Server) handleArtworksByArtist(w http.ResponseWriter, r *http.Request) {
	artistID, ok := pathID(w, r, "artistId")
	if !ok {
		return
	}

	artworks, err := s.artworks.ByArtist(r.Context(), artistID)
	if err != nil {
		s.internalError(w, err, "Error fetching artworks")
		return
	}

	list := newArtworkList(artworks)
	writeList(w, http.StatusOK, len(list), list)
}

func (s *Server) handleSearchArtworks(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	artworks, err := s.artworks.Search(r.Context(), term)
	if err != nil {
		s.internalError(w, err, "Error searching artworks")
		return
	}

	list := newArtworkList(artworks)
	writeList(w, http.StatusOK, len(list), list)
}

func (s *Server) handleCreateArtwork(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var params artwork.SaveParams
	if !decodeBody(w, r, &params) {
		return
	}

	id, err := s.artworks.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, artwork.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, err, "Error creating artwork")
		return
	}

	writeData(w, http.StatusCreated, map[string]int64{"artwork_id": id})
}

func (s *Server) handleUpdateArtwork(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var params artwork.SaveParams
	if !decodeBody(w, r, &params) {
		return
	}

	a, err := s.artworks.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, artwork.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, artwork.ErrNotFound):
			writeError(w, http.StatusNotFound, "Artwork not found")
		default:
			s.internalError(w, err, "Error updating artwork")
		}
		return
	}

	writeData(w, http.StatusOK, newArtworkResponse(a))
}

func (s *Server) handleDeleteArtwork(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.artworks.Delete(r.Context(), id); err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Artwork not found")
			return
		}
		s.internalError(w, err, "Error deleting artwork")
		return
	}

	writeMessage(w, http.StatusOK, "Artwork deleted successfully")
}
