package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed so existing digests remain verifiable across releases.
const bcryptCost = 10

var (
	// ErrInvalidCredentials signals wrong email or password. Login failures
	// are deliberately undifferentiated so callers cannot probe which half
	// was wrong.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrMissingFields signals an incomplete registration request.
	ErrMissingFields = errors.New("auth: username, email, password, security question and answer are required")
	// ErrInvalidQuestion signals a security question outside the fixed set.
	ErrInvalidQuestion = errors.New("auth: invalid security question")
)

// Service handles registration and login.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// Session bundles the token and domain user returned after registration or login.
type Session struct {
	Token string
	User  User
}

// NewService creates a new authentication service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Tokens exposes the token manager for the request gate.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// Register creates a new account with role "user" and returns a session for it.
// Both the password and the normalized security answer are bcrypt-hashed
// before storage; the plaintext of either never leaves this function.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.SecurityQuestion == "" || req.SecurityAnswer == "" {
		return Session{}, ErrMissingFields
	}
	if !IsValidSecurityQuestion(req.SecurityQuestion) {
		return Session{}, ErrInvalidQuestion
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("auth: hash password: %w", err)
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(NormalizeAnswer(req.SecurityAnswer)), bcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("auth: hash security answer: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Username:           req.Username,
		Email:              NormalizeEmail(req.Email),
		PasswordHash:       string(passwordHash),
		FullName:           req.FullName,
		Phone:              req.Phone,
		Role:               RoleUser,
		SecurityQuestion:   req.SecurityQuestion,
		SecurityAnswerHash: string(answerHash),
	})
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: user}, nil
}

// Login authenticates a user and returns a session embedding the stored role.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	if req.Email == "" || req.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: user}, nil
}

// GetUserByID retrieves account details for an authenticated user.
func (s *Service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
