package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const publicViewKeyPrefix = "quote"

// ErrCacheMiss is returned by PublicViewCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// PublicViewCache stores the JSON read model served on the access-link routes.
// Key format: "quote:{kind}:{id}" where kind is "budget" or "material_list".
//
// Entries are written after a successful read and dropped after any commit
// that changes the aggregate, so a stale entry lives at most one TTL.
type PublicViewCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewPublicViewCache creates a PublicViewCache backed by the given RedisClient.
func NewPublicViewCache(r *RedisClient, ttl time.Duration) *PublicViewCache {
	return &PublicViewCache{client: r, ttl: ttl}
}

// Get decodes the cached view into dst. Returns ErrCacheMiss when not cached.
func (c *PublicViewCache) Get(ctx context.Context, kind string, id uuid.UUID, dst any) error {
	raw, err := c.client.Client().Get(ctx, c.key(kind, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("cache decode: %w", err)
	}
	return nil
}

// Set encodes v as JSON and stores it with the configured TTL.
func (c *PublicViewCache) Set(ctx context.Context, kind string, id uuid.UUID, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(kind, id), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached view. Deleting a missing key is not an error.
func (c *PublicViewCache) Delete(ctx context.Context, kind string, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(kind, id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *PublicViewCache) key(kind string, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", publicViewKeyPrefix, kind, id)
}
