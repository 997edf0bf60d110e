package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/favoritesapp/favorites-api/pkg/logger"
)

// TokenStore keeps a Redis denylist of revoked JWTs so that logout takes
// effect before the token expires. A nil store disables revocation checks.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a token store backed by the given Redis client
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func tokenKey(token string) string {
	// Store a digest, not the raw token
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("revoked:%s", hex.EncodeToString(sum[:]))
}

// Revoke marks a token as revoked until its natural expiry
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, tokenKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token has been revoked. Redis being down is
// treated as "not revoked" so that auth keeps working without the denylist.
func (s *TokenStore) IsRevoked(ctx context.Context, token string) bool {
	if s == nil || s.client == nil {
		return false
	}
	n, err := s.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Token denylist lookup failed")
		return false
	}
	return n > 0
}
