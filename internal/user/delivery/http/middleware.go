package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/favoritesapp/favorites-api/internal/user/domain"
	"github.com/favoritesapp/favorites-api/pkg/auth"
)

type contextKey string

// Context keys carrying the resolved identity into handlers
const (
	UserIDKey contextKey = "user_id"
	NameKey   contextKey = "name"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

// Middleware resolves the authenticated identity for downstream handlers.
// Role and ownership decisions happen here at the boundary; the usecases
// below it only receive explicit user ids and trust the caller.
type Middleware struct {
	tokens *auth.TokenStore
}

// NewMiddleware creates the auth middleware with an optional token denylist
func NewMiddleware(tokens *auth.TokenStore) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the bearer token and puts the claims in context
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token := parts[1]
		claims, err := auth.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if m.tokens.IsRevoked(r.Context(), token) {
			respondError(w, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, NameKey, claims.Name)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminOnly checks that the authenticated user has the admin role
func (m *Middleware) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleKey).(string)
		if !ok || role != domain.RoleAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
