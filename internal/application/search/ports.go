package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// Engine is the product search backend. Implemented by the HTTP
// adapter in infrastructure/search.
type Engine interface {
	Search(ctx context.Context, filter catalog.SearchFilter) (*catalog.ResultPage, error)
	Suggest(ctx context.Context, tenantID uuid.UUID, prefix string, limit int) ([]string, error)
}

// ResultCache caches whole result pages keyed by the normalized
// request. Get returns (nil, nil) on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*catalog.ResultPage, error)
	Set(ctx context.Context, key string, page *catalog.ResultPage, ttl time.Duration) error
}

// Favorites returns a customer's cached favorite categories and tags
// for personalized reranking. Both empty means no personalization.
type Favorites interface {
	FavoritesFor(ctx context.Context, tenantID, customerID uuid.UUID) (categories []string, tags []string, err error)
}

// MediaResolver turns a stored image key into a fetchable URL
type MediaResolver interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}
