// Package cache stores JSON-encoded values in Redis under a key prefix.
// Every operation is a no-op when the client is nil.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache defines a general caching interface
type ICache[T any] interface {
	Get(context.Context, string) (*T, error)
	Set(context.Context, string, *T) error
	Delete(context.Context, ...string) error
}

// Cache implements the ICache interface
type Cache[T any] struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache creates a new Cache instance
func NewCache[T any](rc *redis.Client, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{rc: rc, prefix: prefix, ttl: ttl}
}

// Enabled reports whether a Redis client backs the cache.
func (c *Cache[T]) Enabled() bool {
	return c != nil && c.rc != nil
}

// Key returns the full Redis key of field.
func (c *Cache[T]) Key(field string) string {
	if c.prefix == "" {
		return field
	}
	return fmt.Sprintf("%s:%s", c.prefix, field)
}

// Get retrieves a single item from cache, nil on a miss
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if !c.Enabled() {
		return nil, nil
	}

	result, err := c.rc.Get(ctx, c.Key(field)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err = json.Unmarshal([]byte(result), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a single item into cache
func (c *Cache[T]) Set(ctx context.Context, field string, data *T) error {
	if !c.Enabled() {
		return nil
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := c.rc.Set(ctx, c.Key(field), bytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete removes items from cache
func (c *Cache[T]) Delete(ctx context.Context, fields ...string) error {
	if !c.Enabled() || len(fields) == 0 {
		return nil
	}

	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = c.Key(f)
	}
	if err := c.rc.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
