package command

import (
	"context"
	"fmt"
	"time"

	"github.com/favoritesapp/favorites-api/pkg/auth"
)

// LogoutUserCommand revokes the presented token
type LogoutUserCommand struct {
	Token string
}

// LogoutUserHandler handles user logout by denylisting the token until its
// natural expiry
type LogoutUserHandler struct {
	tokens *auth.TokenStore
}

// NewLogoutUserHandler creates a new logout handler
func NewLogoutUserHandler(tokens *auth.TokenStore) *LogoutUserHandler {
	return &LogoutUserHandler{tokens: tokens}
}

// Handle executes the logout command
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	claims, err := auth.ValidateToken(cmd.Token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.tokens.Revoke(ctx, cmd.Token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
