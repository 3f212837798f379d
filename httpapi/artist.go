package httpapi

import (
	"errors"
	"net/http"

	"artspace/artist"
)

type artistResponse struct {
	ArtistID     int64             `json:"artist_id"`
	Name         string            `json:"artist_name"`
	Bio          *string           `json:"bio,omitempty"`
	ContactEmail *string           `json:"contact_email,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Artworks     []artworkResponse `json:"artworks,omitempty"`
}

func newArtistResponse(a artist.Artist) artistResponse {
	return artistResponse{
		ArtistID:     a.ID,
		Name:         a.Name,
		Bio:          a.Bio,
		ContactEmail: a.ContactEmail,
		Phone:        a.Phone,
	}
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		s.internalError(w, err, "Error fetching artists")
		return
	}

	out := make([]artistResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, newArtistResponse(a))
	}
	writeList(w, http.StatusOK, len(out), out)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	profile, err := s.artists.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, artist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Artist not found")
			return
		}
		s.internalError(w, err, "Error fetching artist")
		return
	}

	resp := newArtistResponse(profile.Artist)
	resp.Artworks = newArtworkList(profile.Artworks)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var params artist.SaveParams
	if !decodeBody(w, r, &params) {
		return
	}

	id, err := s.artists.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, artist.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, err, "Error creating artist")
		return
	}

	writeData(w, http.StatusCreated, map[string]int64{"artist_id": id})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var params artist.SaveParams
	if !decodeBody(w, r, &params) {
		return
	}

	a, err := s.artists.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, artist.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, artist.ErrNotFound):
			writeError(w, http.StatusNotFound, "Artist not found")
		default:
			s.internalError(w, err, "Error updating artist")
		}
		return
	}

	writeData(w, http.StatusOK, newArtistResponse(a))
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, artist.ErrHasArtworks):
			writeError(w, http.StatusBadRequest, "Cannot delete artist with existing artworks")
		case errors.Is(err, artist.ErrNotFound):
			writeError(w, http.StatusNotFound, "Artist not found")
		default:
			s.internalError(w, err, "Error deleting artist")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Artist deleted successfully")
}
