package recovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"artspace/auth"
)

// Repository handles data access for the recovery flow.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (auth.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetSecurityQuestion(ctx context.Context, userID int64, question, answerHash string) error
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed recovery repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// GetUserByEmail retrieves the recovery-relevant user fields by email.
func (r *PGRepository) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	const selectSQL = `
		SELECT user_id, email, security_question, security_answer
		FROM users
		WHERE email = $1
	`

	var user auth.User
	err := r.pool.QueryRow(ctx, selectSQL, email).Scan(
		&user.ID,
		&user.Email,
		&user.SecurityQuestion,
		&user.SecurityAnswerHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, ErrAccountNotFound
		}
		return auth.User{}, fmt.Errorf("recovery: get user by email: %w", err)
	}

	return user, nil
}

// UpdatePassword overwrites the password hash and refreshes updated_at.
func (r *PGRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const updateSQL = `
		UPDATE users
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`

	if _, err := r.pool.Exec(ctx, updateSQL, passwordHash, userID); err != nil {
		return fmt.Errorf("recovery: update password: %w", err)
	}
	return nil
}

// SetSecurityQuestion replaces the recovery question and answer hash together,
// so an account never holds one half of a recovery method.
func (r *PGRepository) SetSecurityQuestion(ctx context.Context, userID int64, question, answerHash string) error {
	const updateSQL = `
		UPDATE users
		SET security_question = $1, security_answer = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3
	`

	if _, err := r.pool.Exec(ctx, updateSQL, question, answerHash, userID); err != nil {
		return fmt.Errorf("recovery: set security question: %w", err)
	}
	return nil
}
