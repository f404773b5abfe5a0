// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mca-analytics/backend/internal/application/adapter"
)

// redisSnapshotCache implements adapter.SnapshotCache on Redis with JSON
// values and a fixed TTL.
type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSnapshotCache creates a new Redis-backed snapshot cache instance.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) adapter.SnapshotCache {
	return &redisSnapshotCache{
		client: client,
		ttl:    ttl,
		prefix: "snapshot:",
	}
}

// Get unmarshals the cached value for key into dest.
func (c *redisSnapshotCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key with the configured TTL.
func (c *redisSnapshotCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the given keys. Missing keys are not an error.
func (c *redisSnapshotCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.prefix + key
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}
	return nil
}
