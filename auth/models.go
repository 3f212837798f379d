package auth

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain representation of an account. It mirrors the users table
// and carries no JSON annotations so it can be reused by different
// presentation layers; handlers project it into public-safe responses.
type User struct {
	ID                 int64
	Username           string
	Email              string
	PasswordHash       string
	FullName           *string
	Phone              *string
	Role               Role
	SecurityQuestion   *string
	SecurityAnswerHash *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasRecovery reports whether the account has both halves of a recovery
// method configured.
func (u User) HasRecovery() bool {
	return u.SecurityQuestion != nil && *u.SecurityQuestion != "" &&
		u.SecurityAnswerHash != nil && *u.SecurityAnswerHash != ""
}

// RegisterRequest contains user registration data supplied by callers.
type RegisterRequest struct {
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	FullName         *string `json:"full_name"`
	Phone            *string `json:"phone"`
	SecurityQuestion string  `json:"securityQuestion"`
	SecurityAnswer   string  `json:"securityAnswer"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
