package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAttemptStore counts failed login attempts per account with a
// rolling window, backing the lockout policy.
type RedisAttemptStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAttemptStore creates a new RedisAttemptStore
func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{
		client:    client,
		keyPrefix: "auth:",
	}
}

// Increment bumps the attempt counter and returns the new count. The
// window starts at the first failure.
func (s *RedisAttemptStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.keyPrefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("attempt store increment: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return count, fmt.Errorf("attempt store expire: %w", err)
		}
	}
	return count, nil
}

// Count returns the current attempt count, zero when no failures recorded
func (s *RedisAttemptStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, s.keyPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("attempt store count: %w", err)
	}
	return count, nil
}

// Reset clears the attempt counter after a successful login
func (s *RedisAttemptStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keyPrefix+key).Err()
}
