package httpapi

import (
	"errors"
	"net/http"

	"artspace/recovery"
)

func (s *Server) handleSecurityQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"questions": s.recovery.Questions(),
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req recovery.ResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.recovery.ResetPassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, recovery.ErrMissingFields),
			errors.Is(err, recovery.ErrWeakPassword),
			errors.Is(err, recovery.ErrInvalidQuestion),
			errors.Is(err, recovery.ErrNoRecoverySet),
			errors.Is(err, recovery.ErrWrongQuestion):
			writeError(w, http.StatusBadRequest, resetMessage(err))
		case errors.Is(err, recovery.ErrWrongAnswer):
			writeError(w, http.StatusUnauthorized, resetMessage(err))
		case errors.Is(err, recovery.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, resetMessage(err))
		default:
			s.internalError(w, err, "Failed to reset password")
		}
		return
	}

	s.log.Info("password reset completed")
	writeMessage(w, http.StatusOK, "Password reset successfully")
}

func (s *Server) handleUpdateSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	var req recovery.UpdateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.recovery.UpdateSecurityQuestion(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, recovery.ErrMissingFields),
			errors.Is(err, recovery.ErrInvalidQuestion):
			writeError(w, http.StatusBadRequest, resetMessage(err))
		default:
			s.internalError(w, err, "Failed to update security question")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Security question updated successfully")
}

// resetMessage maps recovery sentinels to the caller-facing wording.
func resetMessage(err error) string {
	switch {
	case errors.Is(err, recovery.ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, recovery.ErrWeakPassword):
		return "Password must be at least 6 characters long"
	case errors.Is(err, recovery.ErrInvalidQuestion):
		return "Invalid security question"
	case errors.Is(err, recovery.ErrAccountNotFound):
		return "No account found with this email address"
	case errors.Is(err, recovery.ErrNoRecoverySet):
		return "This account does not have a security question set. Please sign up again or contact support."
	case errors.Is(err, recovery.ErrWrongQuestion):
		return "This is not the security question you chose during registration. Please select the correct one."
	case errors.Is(err, recovery.ErrWrongAnswer):
		return "Incorrect security answer"
	default:
		return err.Error()
	}
}
