package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	identityapp "github.com/marketplace/backend/internal/application/identity"
)

// RedisSessionCache implements the short-TTL session lookup cache.
// Bearer tokens are hashed before use as keys so the raw token never
// lands in Redis.
type RedisSessionCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionCache creates a new RedisSessionCache
func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{
		client:    client,
		keyPrefix: "session:",
	}
}

func (c *RedisSessionCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return c.keyPrefix + hex.EncodeToString(sum[:16])
}

// Get returns the cached session for the bearer token, (nil, nil) on a miss
func (c *RedisSessionCache) Get(ctx context.Context, token string) (*identityapp.ResolvedSession, error) {
	data, err := c.client.Get(ctx, c.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var session identityapp.ResolvedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &session, nil
}

// Set stores the resolved session under the bearer token
func (c *RedisSessionCache) Set(ctx context.Context, token string, session *identityapp.ResolvedSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(token), data, ttl).Err()
}

// Delete evicts the cached session
func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}
