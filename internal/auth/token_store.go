package auth

import (
	"context"
	"time"

	"libris/internal/cache"
)

// TokenStoreInterface defines the interface for token revocation storage.
type TokenStoreInterface interface {
	BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore records revoked token IDs in Redis until their natural expiry.
// Tokens are otherwise stateless; only explicit logout lands here.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistToken marks a token ID revoked until its TTL elapses.
func (s *TokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.cache.SetFlag(ctx, cache.TokenBlacklistKey(tokenID), ttl)
	return nil
}

// IsTokenBlacklisted checks if a token ID has been revoked. An unreachable
// store reads as not revoked, so auth fails open rather than locking
// everyone out.
func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.HasFlag(ctx, cache.TokenBlacklistKey(tokenID)), nil
}
