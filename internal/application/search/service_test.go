package search

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// MockEngine is a mock implementation of Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Search(ctx context.Context, filter catalog.SearchFilter) (*catalog.ResultPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ResultPage), args.Error(1)
}

func (m *MockEngine) Suggest(ctx context.Context, tenantID uuid.UUID, prefix string, limit int) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockResultCache is a mock implementation of ResultCache
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, key string) (*catalog.ResultPage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ResultPage), args.Error(1)
}

func (m *MockResultCache) Set(ctx context.Context, key string, page *catalog.ResultPage, ttl time.Duration) error {
	args := m.Called(ctx, key, page, ttl)
	return args.Error(0)
}

// MockFavorites is a mock implementation of Favorites
type MockFavorites struct {
	mock.Mock
}

func (m *MockFavorites) FavoritesFor(ctx context.Context, tenantID, customerID uuid.UUID) ([]string, []string, error) {
	args := m.Called(ctx, tenantID, customerID)
	var cats, tags []string
	if args.Get(0) != nil {
		cats = args.Get(0).([]string)
	}
	if args.Get(1) != nil {
		tags = args.Get(1).([]string)
	}
	return cats, tags, args.Error(2)
}

// MockMediaResolver is a mock implementation of MediaResolver
type MockMediaResolver struct {
	mock.Mock
}

func (m *MockMediaResolver) ResolveURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func newSearchService(engine *MockEngine, cache *MockResultCache, favorites *MockFavorites, media *MockMediaResolver) *Service {
	return NewService(engine, cache, favorites, media, zap.NewNop())
}

func hit(name, category string, tags ...string) catalog.Hit {
	return catalog.Hit{Product: catalog.Product{ID: uuid.New(), Name: name, Category: category, Tags: tags}}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("engine failure degrades to empty fallback page", func(t *testing.T) {
		engine := new(MockEngine)
		cache := new(MockResultCache)
		svc := newSearchService(engine, cache, new(MockFavorites), new(MockMediaResolver))

		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		engine.On("Search", ctx, mock.Anything).Return(nil, assert.AnError)

		page, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, Query: "shoes"})
		require.NoError(t, err)
		assert.True(t, page.Fallback)
		assert.Empty(t, page.Hits)
		assert.Equal(t, 1, page.Page)
	})

	t.Run("cache hit skips the engine", func(t *testing.T) {
		engine := new(MockEngine)
		cache := new(MockResultCache)
		svc := newSearchService(engine, cache, new(MockFavorites), new(MockMediaResolver))

		cached := &catalog.ResultPage{Hits: []catalog.Hit{hit("Boot", "shoes")}, Total: 1}
		cache.On("Get", ctx, mock.Anything).Return(cached, nil)

		page, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, Query: "boot", Sort: catalog.SortPriceAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		engine.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("results are cached and images resolved", func(t *testing.T) {
		engine := new(MockEngine)
		cache := new(MockResultCache)
		media := new(MockMediaResolver)
		svc := newSearchService(engine, cache, new(MockFavorites), media)

		h := hit("Boot", "shoes")
		h.Product.ImageKey = "products/boot.jpg"
		result := &catalog.ResultPage{Hits: []catalog.Hit{h}, Total: 1}

		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		engine.On("Search", ctx, mock.Anything).Return(result, nil)
		media.On("ResolveURL", ctx, "products/boot.jpg").Return("https://cdn.example.com/boot.jpg", nil)
		cache.On("Set", ctx, mock.Anything, result, resultCacheTTL).Return(nil)

		page, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, Query: "boot", Sort: catalog.SortNewest})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/boot.jpg", page.Hits[0].Product.ImageURL)
		cache.AssertExpectations(t)
	})

	t.Run("invalid filter is rejected", func(t *testing.T) {
		svc := newSearchService(new(MockEngine), new(MockResultCache), new(MockFavorites), new(MockMediaResolver))

		_, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, Sort: "bogus"})
		assert.Error(t, err)
	})

	t.Run("personalization only applies to relevance sort", func(t *testing.T) {
		engine := new(MockEngine)
		cache := new(MockResultCache)
		favorites := new(MockFavorites)
		svc := newSearchService(engine, cache, favorites, new(MockMediaResolver))

		customerID := uuid.New()
		result := &catalog.ResultPage{Hits: []catalog.Hit{hit("A", "shoes"), hit("B", "bags")}, Total: 2}
		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		engine.On("Search", ctx, mock.Anything).Return(result, nil)
		cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, Sort: catalog.SortPriceAsc, CustomerID: &customerID})
		require.NoError(t, err)
		favorites.AssertNotCalled(t, "FavoritesFor", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("favorites rerank relevance results", func(t *testing.T) {
		engine := new(MockEngine)
		cache := new(MockResultCache)
		favorites := new(MockFavorites)
		svc := newSearchService(engine, cache, favorites, new(MockMediaResolver))

		customerID := uuid.New()
		result := &catalog.ResultPage{Hits: []catalog.Hit{hit("First", "bags"), hit("Second", "shoes")}, Total: 2}
		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		engine.On("Search", ctx, mock.Anything).Return(result, nil)
		cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		favorites.On("FavoritesFor", ctx, tenantID, customerID).Return([]string{"shoes"}, nil, nil)

		page, err := svc.Search(ctx, catalog.SearchFilter{TenantID: tenantID, CustomerID: &customerID})
		require.NoError(t, err)
		assert.Equal(t, "Second", page.Hits[0].Product.Name)
	})
}

func TestRerank(t *testing.T) {
	t.Run("boosted hit overtakes positional leader", func(t *testing.T) {
		hits := []catalog.Hit{hit("A", "bags"), hit("B", "shoes"), hit("C", "hats")}

		reranked := Rerank(hits, []string{"shoes"}, nil, 0.5)
		assert.Equal(t, "B", reranked[0].Product.Name)
	})

	t.Run("no favorite attributes leaves order unchanged", func(t *testing.T) {
		hits := []catalog.Hit{hit("A", "bags"), hit("B", "shoes")}

		reranked := Rerank(hits, nil, nil, 0.5)
		assert.Equal(t, "A", reranked[0].Product.Name)
		assert.Equal(t, "B", reranked[1].Product.Name)
	})

	t.Run("stable for equal scores", func(t *testing.T) {
		hits := []catalog.Hit{hit("A", "shoes"), hit("B", "shoes")}

		// Full weight on the boost makes both scores equal.
		reranked := Rerank(hits, []string{"shoes"}, nil, 1.0)
		assert.Equal(t, "A", reranked[0].Product.Name)
		assert.Equal(t, "B", reranked[1].Product.Name)
	})

	t.Run("tag matches contribute to the boost", func(t *testing.T) {
		a := hit("A", "bags")
		b := hit("B", "bags", "sale", "new")
		reranked := Rerank([]catalog.Hit{a, b}, nil, []string{"sale", "new"}, 0.8)
		assert.Equal(t, "B", reranked[0].Product.Name)
	})
}
