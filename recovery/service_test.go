package recovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"artspace/auth"
)

const (
	testQuestion = "What city were you born in?"
	testAnswer   = "Kathmandu"
)

func seedUser(t *testing.T, repo *fakeRepository, email, password string) auth.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	require.NoError(t, err)
	answerHash, err := bcrypt.GenerateFromPassword([]byte(auth.NormalizeAnswer(testAnswer)), bcryptCost)
	require.NoError(t, err)

	question := testQuestion
	answer := string(answerHash)
	user := auth.User{
		ID:                 repo.nextID,
		Email:              email,
		PasswordHash:       string(passwordHash),
		SecurityQuestion:   &question,
		SecurityAnswerHash: &answer,
	}
	repo.nextID++
	repo.users[user.ID] = fakeUser{User: user}
	return user
}

func TestResetPassword_FullFlow(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	user := seedUser(t, repo, "alice@example.com", "secret1")
	ctx := context.Background()

	// Case and whitespace variants of the stored answer are accepted.
	err := svc.ResetPassword(ctx, ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   "kathmandu ",
		NewPassword:      "newpass1",
	})
	require.NoError(t, err)

	stored := repo.users[user.ID]
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")),
		"old password must no longer verify")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass1")),
		"new password must verify")
	assert.True(t, repo.users[user.ID].UpdatedAtTouched)
}

func TestResetPassword_WrongQuestion(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seedUser(t, repo, "alice@example.com", "secret1")

	// A valid, enumerated question that is not the one the account
	// registered with is still rejected.
	err := svc.ResetPassword(context.Background(), ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: "What is your favorite book?",
		SecurityAnswer:   testAnswer,
		NewPassword:      "newpass1",
	})
	assert.ErrorIs(t, err, ErrWrongQuestion)
}

func TestResetPassword_WrongAnswer(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seedUser(t, repo, "alice@example.com", "secret1")

	err := svc.ResetPassword(context.Background(), ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   "Pokhara",
		NewPassword:      "newpass1",
	})
	assert.ErrorIs(t, err, ErrWrongAnswer)
}

func TestResetPassword_Validation(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seedUser(t, repo, "alice@example.com", "secret1")
	ctx := context.Background()

	err := svc.ResetPassword(ctx, ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   testAnswer,
	})
	assert.ErrorIs(t, err, ErrMissingFields)

	err = svc.ResetPassword(ctx, ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   testAnswer,
		NewPassword:      "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	err = svc.ResetPassword(ctx, ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: "What is your favorite color?",
		SecurityAnswer:   testAnswer,
		NewPassword:      "newpass1",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestResetPassword_AccountNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	err := svc.ResetPassword(context.Background(), ResetRequest{
		Email:            "missing@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   testAnswer,
		NewPassword:      "newpass1",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResetPassword_NoRecoverySet(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	user := seedUser(t, repo, "alice@example.com", "secret1")
	stripped := repo.users[user.ID]
	stripped.SecurityQuestion = nil
	stripped.SecurityAnswerHash = nil
	repo.users[user.ID] = stripped

	err := svc.ResetPassword(context.Background(), ResetRequest{
		Email:            "alice@example.com",
		SecurityQuestion: testQuestion,
		SecurityAnswer:   testAnswer,
		NewPassword:      "newpass1",
	})
	assert.ErrorIs(t, err, ErrNoRecoverySet)
}

func TestUpdateSecurityQuestion(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	user := seedUser(t, repo, "alice@example.com", "secret1")
	ctx := context.Background()

	err := svc.UpdateSecurityQuestion(ctx, UpdateQuestionRequest{
		UserID:           user.ID,
		SecurityQuestion: "What was your childhood nickname?",
		SecurityAnswer:   " Ace ",
	})
	require.NoError(t, err)

	stored := repo.users[user.ID]
	require.NotNil(t, stored.SecurityQuestion)
	assert.Equal(t, "What was your childhood nickname?", *stored.SecurityQuestion)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.SecurityAnswerHash), []byte("ace")),
		"stored answer hash must verify against the normalized answer")

	err = svc.UpdateSecurityQuestion(ctx, UpdateQuestionRequest{
		UserID:           user.ID,
		SecurityQuestion: "Not a real question?",
		SecurityAnswer:   "x",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	err = svc.UpdateSecurityQuestion(ctx, UpdateQuestionRequest{
		SecurityQuestion: testQuestion,
		SecurityAnswer:   "x",
	})
	assert.ErrorIs(t, err, ErrMissingFields)
}

type fakeUser struct {
	auth.User
	UpdatedAtTouched bool
}

type fakeRepository struct {
	users  map[int64]fakeUser
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[int64]fakeUser), nextID: 1}
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u.User, nil
		}
	}
	return auth.User{}, ErrAccountNotFound
}

func (f *fakeRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = passwordHash
	u.UpdatedAtTouched = true
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) SetSecurityQuestion(ctx context.Context, userID int64, question, answerHash string) error {
	u := f.users[userID]
	u.SecurityQuestion = &question
	u.SecurityAnswerHash = &answerHash
	u.UpdatedAtTouched = true
	f.users[userID] = u
	return nil
}
