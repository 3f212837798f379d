package recovery

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"artspace/auth"
)

// bcryptCost matches the cost used at registration so digests written by
// either path verify interchangeably.
const bcryptCost = 10

const minPasswordLength = 6

var (
	// ErrMissingFields signals an incomplete request.
	ErrMissingFields = errors.New("recovery: all fields are required")
	// ErrWeakPassword signals a new password below the minimum length.
	ErrWeakPassword = errors.New("recovery: password must be at least 6 characters long")
	// ErrInvalidQuestion signals a security question outside the fixed set.
	ErrInvalidQuestion = errors.New("recovery: invalid security question")
	// ErrAccountNotFound signals that no account exists for the email.
	ErrAccountNotFound = errors.New("recovery: no account found with this email address")
	// ErrNoRecoverySet signals an account without a configured recovery method.
	ErrNoRecoverySet = errors.New("recovery: this account does not have a security question set")
	// ErrWrongQuestion signals a question other than the one chosen at registration.
	ErrWrongQuestion = errors.New("recovery: this is not the security question chosen during registration")
	// ErrWrongAnswer signals a security answer that does not verify.
	ErrWrongAnswer = errors.New("recovery: incorrect security answer")
)

// Service handles the security-question password recovery flow.
type Service struct {
	repo Repository
}

// NewService creates a new recovery service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Questions returns the fixed security question list.
func (s *Service) Questions() []string {
	return auth.SecurityQuestions
}

// ResetPassword runs the single-request recovery flow: lookup, recovery
// configured check, exact question match, normalized answer verification,
// then the password overwrite. Each step fails with its own sentinel so the
// handler can map it to the right status.
func (s *Service) ResetPassword(ctx context.Context, req ResetRequest) error {
	if req.Email == "" || req.SecurityQuestion == "" || req.SecurityAnswer == "" || req.NewPassword == "" {
		return ErrMissingFields
	}
	if len(req.NewPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	if !auth.IsValidSecurityQuestion(req.SecurityQuestion) {
		return ErrInvalidQuestion
	}

	user, err := s.repo.GetUserByEmail(ctx, auth.NormalizeEmail(req.Email))
	if err != nil {
		return err
	}

	if !user.HasRecovery() {
		return ErrNoRecoverySet
	}

	// The caller must supply the exact question the account registered with,
	// not merely any question from the list. Knowing which question was
	// chosen is a factor beyond the answer itself.
	if *user.SecurityQuestion != req.SecurityQuestion {
		return ErrWrongQuestion
	}

	candidate := auth.NormalizeAnswer(req.SecurityAnswer)
	if err := bcrypt.CompareHashAndPassword([]byte(*user.SecurityAnswerHash), []byte(candidate)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongAnswer
		}
		return fmt.Errorf("recovery: compare answer: %w", err)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("recovery: hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, user.ID, string(newHash))
}

// UpdateSecurityQuestion sets or replaces an account's recovery question,
// applying the same question-enum and answer-normalization rules as
// registration.
func (s *Service) UpdateSecurityQuestion(ctx context.Context, req UpdateQuestionRequest) error {
	if req.UserID == 0 || req.SecurityQuestion == "" || req.SecurityAnswer == "" {
		return ErrMissingFields
	}
	if !auth.IsValidSecurityQuestion(req.SecurityQuestion) {
		return ErrInvalidQuestion
	}

	answerHash, err := bcrypt.GenerateFromPassword([]byte(auth.NormalizeAnswer(req.SecurityAnswer)), bcryptCost)
	if err != nil {
		return fmt.Errorf("recovery: hash answer: %w", err)
	}

	return s.repo.SetSecurityQuestion(ctx, req.UserID, req.SecurityQuestion, string(answerHash))
}
