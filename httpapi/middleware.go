package httpapi

import (
	"context"
	"errors"
	"net/http"

	"artspace/auth"
)

// TokenHeader is the request header carrying the raw signed token.
const TokenHeader = "x-auth-token"

type contextKey struct{}

var claimsKey contextKey

// ClaimsFrom returns the verified token claims attached by RequireAuth.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// RequireAuth is the request gate for protected routes. It reads the token
// from the x-auth-token header, verifies it and attaches the decoded claims
// to the request context. The role is trusted from the claims with no
// per-request database lookup, which is why role changes only take effect
// after re-login.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Token has expired. Please login again.")
					return
				}
				writeError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireClaims fetches the gated identity, rejecting requests that somehow
// bypassed the gate.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return nil, false
	}
	return claims, true
}

// requireAdmin is the role authorizer, invoked at the top of every
// admin-only handler before any side-effecting logic runs.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return nil, false
	}
	if claims.Role != auth.RoleAdmin {
		writeError(w, http.StatusForbidden, "Access denied. Admin only.")
		return nil, false
	}
	return claims, true
}
