package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marketplace/backend/internal/application/support"
)

// tagCacheTTL bounds staleness when an invalidation is lost
const tagCacheTTL = 10 * time.Minute

// RedisTagCache caches a customer's tag memberships
type RedisTagCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTagCache creates a new RedisTagCache
func NewRedisTagCache(client *redis.Client) *RedisTagCache {
	return &RedisTagCache{
		client:    client,
		keyPrefix: "customer:tags:",
	}
}

func (c *RedisTagCache) key(tenantID, customerID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", c.keyPrefix, tenantID, customerID)
}

// Get returns the cached tags, (nil, false, nil) on a miss
func (c *RedisTagCache) Get(ctx context.Context, tenantID, customerID uuid.UUID) ([]support.TagView, bool, error) {
	data, err := c.client.Get(ctx, c.key(tenantID, customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("tag cache get: %w", err)
	}

	var tags []support.TagView
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, false, fmt.Errorf("tag cache decode: %w", err)
	}
	return tags, true, nil
}

// Set stores the customer's tags
func (c *RedisTagCache) Set(ctx context.Context, tenantID, customerID uuid.UUID, tags []support.TagView) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("tag cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(tenantID, customerID), data, tagCacheTTL).Err()
}

// Invalidate drops the cached tags after an assignment change
func (c *RedisTagCache) Invalidate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return c.client.Del(ctx, c.key(tenantID, customerID)).Err()
}
