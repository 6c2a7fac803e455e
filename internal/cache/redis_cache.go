package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qikpos/pos-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

// redisCache stores values as JSON blobs. Hot reads at the register are
// product lookups and store settings; both invalidate on write.
type redisCache struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{client: client, cfg: cfg}
}

// Get reports whether the key was found. A miss is not an error.
func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()

	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache read for %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("cache payload for %s is not valid JSON: %w", key, err)
	}

	return true, nil
}

// Set writes the value under key. A non-positive ttl falls back to the
// configured default.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode for %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache write for %s: %w", key, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache invalidation for %s: %w", key, err)
	}

	return nil
}

// Close is a no-op; the redis client is owned and closed by the caller.
func (r *redisCache) Close() error {
	return nil
}
