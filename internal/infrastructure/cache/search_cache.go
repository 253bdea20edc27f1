package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// RedisResultCache caches whole search result pages for a short TTL
type RedisResultCache struct {
	client *redis.Client
}

// NewRedisResultCache creates a new RedisResultCache
func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client}
}

// Get returns the cached page for the key, (nil, nil) on a miss
func (c *RedisResultCache) Get(ctx context.Context, key string) (*catalog.ResultPage, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("result cache get: %w", err)
	}

	var page catalog.ResultPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("result cache decode: %w", err)
	}
	return &page, nil
}

// Set stores the page under the key with the given TTL
func (c *RedisResultCache) Set(ctx context.Context, key string, page *catalog.ResultPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("result cache encode: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
