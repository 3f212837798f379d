package httpapi

import (
	"errors"
	"net/http"

	"artspace/auth"
)

// sessionResponse is the public-safe user projection returned by register and
// login. It never includes the password hash or the answer hash.
type sessionResponse struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
	Token    string  `json:"token"`
}

func newSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		UserID:   s.User.ID,
		Username: s.User.Username,
		Email:    s.User.Email,
		FullName: s.User.FullName,
		Phone:    s.User.Phone,
		Role:     string(s.User.Role),
		Token:    s.Token,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := s.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields),
			errors.Is(err, auth.ErrInvalidQuestion):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "User with this email already exists")
		default:
			s.internalError(w, err, "Error registering user")
		}
		return
	}

	s.log.Infof("user registered: %s", session.User.Email)
	writeData(w, http.StatusCreated, newSessionResponse(session))
}

type userResponse struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
}

// handleMe returns the account behind the presented token. Unlike the role
// check, this does read the database, so it reflects profile changes made
// since the token was issued.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, err := s.auth.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.internalError(w, err, "Error fetching user")
		return
	}

	writeData(w, http.StatusOK, userResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		Role:     string(user.Role),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := s.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		s.internalError(w, err, "Error logging in")
		return
	}

	s.log.Infof("user logged in: %s", session.User.Email)
	writeData(w, http.StatusOK, newSessionResponse(session))
}
