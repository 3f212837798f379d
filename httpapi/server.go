package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"artspace/artist"
	"artspace/artwork"
	"artspace/auth"
	"artspace/booking"
	"artspace/recovery"
)

// Server holds the services behind the HTTP API.
type Server struct {
	log      *logrus.Logger
	auth     *auth.Service
	recovery *recovery.Service
	artworks *artwork.Service
	artists  *artist.Service
	bookings *booking.Service
}

// NewServer wires services into an HTTP server.
func NewServer(
	log *logrus.Logger,
	authSvc *auth.Service,
	recoverySvc *recovery.Service,
	artworkSvc *artwork.Service,
	artistSvc *artist.Service,
	bookingSvc *booking.Service,
) *Server {
	return &Server{
		log:      log,
		auth:     authSvc,
		recovery: recoverySvc,
		artworks: artworkSvc,
		artists:  artistSvc,
		bookings: bookingSvc,
	}
}

// Router builds the /api route tree. Public routes first, then the booking
// subrouter behind the request gate. Admin checks live inside the handlers
// themselves so unauthorized callers never reach side-effecting code.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Password recovery
	api.HandleFunc("/password-reset/security-questions", s.handleSecurityQuestions).Methods(http.MethodGet)
	api.HandleFunc("/password-reset/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/password-reset/update-security-question", s.handleUpdateSecurityQuestion).Methods(http.MethodPost)

	// Artworks: specific routes before /{id}
	api.HandleFunc("/artworks/search", s.handleSearchArtworks).Methods(http.MethodGet)
	api.HandleFunc("/artworks/artist/{artistId}", s.handleArtworksByArtist).Methods(http.MethodGet)
	api.HandleFunc("/artworks", s.handleListArtworks).Methods(http.MethodGet)
	api.HandleFunc("/artworks/{id}", s.handleGetArtwork).Methods(http.MethodGet)

	// Artists
	api.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}", s.handleGetArtist).Methods(http.MethodGet)

	// Protected routes
	gate := RequireAuth(s.auth.Tokens())

	account := api.NewRoute().Subrouter()
	account.Use(gate)
	account.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	admin := api.NewRoute().Subrouter()
	admin.Use(gate)
	admin.HandleFunc("/artworks", s.handleCreateArtwork).Methods(http.MethodPost)
	admin.HandleFunc("/artworks/{id}", s.handleUpdateArtwork).Methods(http.MethodPut)
	admin.HandleFunc("/artworks/{id}", s.handleDeleteArtwork).Methods(http.MethodDelete)
	admin.HandleFunc("/artists", s.handleCreateArtist).Methods(http.MethodPost)
	admin.HandleFunc("/artists/{id}", s.handleUpdateArtist).Methods(http.MethodPut)
	admin.HandleFunc("/artists/{id}", s.handleDeleteArtist).Methods(http.MethodDelete)

	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(gate)
	bookings.HandleFunc("/all-bookings", s.handleAllBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/my-bookings", s.handleMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("", s.handleCreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/status", s.handleUpdateBookingStatus).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id}/cancel", s.handleCancelBooking).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id}", s.handleGetBooking).Methods(http.MethodGet)

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	return r
}

// internalError logs the cause and answers with a generic message: unexpected
// datastore or hash failures must never leak details to the caller.
func (s *Server) internalError(w http.ResponseWriter, err error, message string) {
	s.log.WithError(err).Error(message)
	writeError(w, http.StatusInternalServerError, message)
}
