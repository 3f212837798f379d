package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, NewTokenManager("test-secret")), repo
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         "secret1",
		SecurityQuestion: "What city were you born in?",
		SecurityAnswer:   "Kathmandu",
	}
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	req := validRegisterRequest()

	ctx := context.Background()
	session, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	if session.User.Email != req.Email {
		t.Fatalf("expected email %q got %q", req.Email, session.User.Email)
	}
	if session.User.Role != RoleUser {
		t.Fatalf("register: expected role %s got %s", RoleUser, session.User.Role)
	}
	if session.User.PasswordHash == req.Password || session.User.PasswordHash == "" {
		t.Fatal("register: password hash must be set and differ from plaintext")
	}
	if !session.User.HasRecovery() {
		t.Fatal("register: expected recovery question and answer to be stored")
	}

	login, err := svc.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login: expected token, got empty string")
	}

	claims, err := svc.Tokens().Verify(login.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != session.User.ID {
		t.Fatalf("verify token: expected user id %d got %d", session.User.ID, claims.UserID)
	}
	if claims.Email != req.Email {
		t.Fatalf("verify token: expected email %q got %q", req.Email, claims.Email)
	}
	if claims.Role != RoleUser {
		t.Fatalf("verify token: expected role %s got %s", RoleUser, claims.Role)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	missing := validRegisterRequest()
	missing.SecurityAnswer = ""
	if _, err := svc.Register(ctx, missing); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	badQuestion := validRegisterRequest()
	badQuestion.SecurityQuestion = "What is your favorite color?"
	if _, err := svc.Register(ctx, badQuestion); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Case variants of the same address collide.
	dup := validRegisterRequest()
	dup.Username = "alice2"
	dup.Email = "Alice@Example.COM"
	if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "unknown@example.com", Password: "irrelevant"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcryptCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("secret1")); err != nil {
		t.Fatalf("expected matching password to verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("secret2")); err == nil {
		t.Fatal("expected non-matching password to fail verification")
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue(42, "alice@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@example.com" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret").WithClock(func() time.Time { return issuedAt })

	token, err := tm.Issue(1, "alice@example.com", RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the 7-day window.
	tm.WithClock(func() time.Time { return issuedAt.Add(tokenTTL - time.Minute) })
	if _, err := tm.Verify(token); err != nil {
		t.Fatalf("expected token to still verify: %v", err)
	}

	// Past expiry.
	tm.WithClock(func() time.Time { return issuedAt.Add(tokenTTL + time.Minute) })
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_Invalid(t *testing.T) {
	tm := NewTokenManager("test-secret")

	if _, err := tm.Verify(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}
	if _, err := tm.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}

	other := NewTokenManager("other-secret")
	token, err := other.Issue(1, "alice@example.com", RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

type fakeRepository struct {
	usersByEmail map[string]User
	usersByID    map[int64]User
	nextID       int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
		usersByID:    make(map[int64]User),
		nextID:       1,
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if _, exists := f.usersByEmail[params.Email]; exists {
		return User{}, ErrDuplicateEmail
	}

	question := params.SecurityQuestion
	answerHash := params.SecurityAnswerHash
	now := time.Now().UTC()
	user := User{
		ID:                 f.nextID,
		Username:           params.Username,
		Email:              params.Email,
		PasswordHash:       params.PasswordHash,
		FullName:           params.FullName,
		Phone:              params.Phone,
		Role:               params.Role,
		SecurityQuestion:   &question,
		SecurityAnswerHash: &answerHash,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	f.nextID++

	f.usersByEmail[user.Email] = user
	f.usersByID[user.ID] = user

	return user, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, userID int64) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}
