package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key scheme. The catalog listing and revoked-token flags are the only two
// things this service caches.
const (
	// CatalogKey holds the JSON-encoded unfiltered book listing.
	CatalogKey = "books:catalog"
	// CatalogTTL bounds how stale the cached listing may grow; every
	// inventory mutation also invalidates it eagerly.
	CatalogTTL = time.Minute
)

// TokenBlacklistKey is where a revoked token ID is flagged until the token's
// natural expiry.
func TokenBlacklistKey(tokenID string) string {
	return "blacklist:token:" + tokenID
}

// Client wraps redis.Client but fails safe: a missing or unreachable Redis
// degrades every read to a miss and every write to a no-op, never to an
// error. Callers therefore get no error results to handle.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// GetJSON decodes the value under key into dest and reports whether a usable
// entry was present. Misses, outages, and undecodable payloads all read as
// absent.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores the JSON encoding of value under key with a TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, payload, ttl)
}

// SetFlag marks key present until ttl elapses.
func (c *Client) SetFlag(ctx context.Context, key string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key, "1", ttl)
}

// HasFlag reports whether key is flagged. Outages read as unflagged.
func (c *Client) HasFlag(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key)
}
