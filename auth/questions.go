package auth

import "strings"

// SecurityQuestions is the fixed set of recovery questions. Accounts register
// with exactly one of these strings; the reset flow requires an exact match
// against the question stored at registration time.
var SecurityQuestions = []string{
	"What is your mother's maiden name?",
	"What was the name of your first pet?",
	"What city were you born in?",
	"What is your favorite book?",
	"What was your childhood nickname?",
}

// IsValidSecurityQuestion reports whether q is one of the fixed questions.
func IsValidSecurityQuestion(q string) bool {
	for _, known := range SecurityQuestions {
		if q == known {
			return true
		}
	}
	return false
}

// NormalizeAnswer lowercases and trims a security answer. The same
// normalization runs before hashing at registration and before verification
// at reset time, so case and whitespace variants of an answer are equivalent.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// NormalizeEmail lowercases and trims an email address. Email is the sole
// login identifier and is stored case-normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
