package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// favoritesTTL expires affinity sets for customers who stop browsing
const favoritesTTL = 30 * 24 * time.Hour

// RedisFavorites tracks the categories and tags a customer interacts
// with, feeding personalized search reranking.
type RedisFavorites struct {
	client *redis.Client
}

// NewRedisFavorites creates a new RedisFavorites
func NewRedisFavorites(client *redis.Client) *RedisFavorites {
	return &RedisFavorites{client: client}
}

func (f *RedisFavorites) categoryKey(tenantID, customerID uuid.UUID) string {
	return fmt.Sprintf("favorites:categories:%s:%s", tenantID, customerID)
}

func (f *RedisFavorites) tagKey(tenantID, customerID uuid.UUID) string {
	return fmt.Sprintf("favorites:tags:%s:%s", tenantID, customerID)
}

// FavoritesFor returns the customer's favorite categories and tags.
// Both empty means no personalization applies.
func (f *RedisFavorites) FavoritesFor(ctx context.Context, tenantID, customerID uuid.UUID) ([]string, []string, error) {
	categories, err := f.client.SMembers(ctx, f.categoryKey(tenantID, customerID)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("favorites categories: %w", err)
	}
	tags, err := f.client.SMembers(ctx, f.tagKey(tenantID, customerID)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("favorites tags: %w", err)
	}
	return categories, tags, nil
}

// Record adds the category and tags of a viewed or purchased product
// to the customer's affinity sets.
func (f *RedisFavorites) Record(ctx context.Context, tenantID, customerID uuid.UUID, category string, tags []string) error {
	pipe := f.client.Pipeline()
	if category != "" {
		key := f.categoryKey(tenantID, customerID)
		pipe.SAdd(ctx, key, category)
		pipe.Expire(ctx, key, favoritesTTL)
	}
	if len(tags) > 0 {
		key := f.tagKey(tenantID, customerID)
		members := make([]interface{}, len(tags))
		for i, tag := range tags {
			members[i] = tag
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, favoritesTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}
