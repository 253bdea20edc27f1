package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// resultCacheTTL keeps result pages hot across repeated storefront
// queries without serving stale inventory for long.
const resultCacheTTL = 30 * time.Second

// personalizationWeight is the blend factor between positional base
// score and favorite-attribute boost.
const personalizationWeight = 0.3

// Service runs the storefront search pipeline: cache, engine call,
// media resolution, personalized rerank.
type Service struct {
	engine    Engine
	cache     ResultCache
	favorites Favorites
	media     MediaResolver
	logger    *zap.Logger
}

// NewService creates a new search service
func NewService(engine Engine, cache ResultCache, favorites Favorites, media MediaResolver, logger *zap.Logger) *Service {
	return &Service{
		engine:    engine,
		cache:     cache,
		favorites: favorites,
		media:     media,
		logger:    logger,
	}
}

// Search executes a storefront search. An unreachable engine degrades
// to an empty result set; the request still succeeds.
func (s *Service) Search(ctx context.Context, filter catalog.SearchFilter) (*catalog.ResultPage, error) {
	if err := filter.Normalize(); err != nil {
		return nil, err
	}

	key := cacheKey(filter)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("Search result cache read failed", zap.Error(err))
	} else if cached != nil {
		return s.personalize(ctx, filter, cached), nil
	}

	started := time.Now()
	page, err := s.engine.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search engine unreachable, serving empty results",
			zap.String("query", filter.Query),
			zap.Error(err))
		return &catalog.ResultPage{
			Hits:     []catalog.Hit{},
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Fallback: true,
		}, nil
	}
	page.Page = filter.Page
	page.PageSize = filter.PageSize
	page.TookMillis = time.Since(started).Milliseconds()

	s.resolveImages(ctx, page)

	if err := s.cache.Set(ctx, key, page, resultCacheTTL); err != nil {
		s.logger.Warn("Search result cache write failed", zap.Error(err))
	}

	return s.personalize(ctx, filter, page), nil
}

// Suggest returns autocomplete suggestions for a query prefix
func (s *Service) Suggest(ctx context.Context, tenantID uuid.UUID, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}
	if limit < 1 || limit > 20 {
		limit = 10
	}
	suggestions, err := s.engine.Suggest(ctx, tenantID, prefix, limit)
	if err != nil {
		s.logger.Warn("Autocomplete unavailable", zap.Error(err))
		return []string{}, nil
	}
	return suggestions, nil
}

// resolveImages swaps image keys for fetchable URLs, best-effort
func (s *Service) resolveImages(ctx context.Context, page *catalog.ResultPage) {
	for i := range page.Hits {
		key := page.Hits[i].Product.ImageKey
		if key == "" {
			continue
		}
		url, err := s.media.ResolveURL(ctx, key)
		if err != nil {
			s.logger.Debug("Image URL resolution failed", zap.String("key", key), zap.Error(err))
			continue
		}
		page.Hits[i].Product.ImageURL = url
	}
}

// personalize reranks relevance-sorted results against the customer's
// favorite categories and tags. Other sort orders pass through, as do
// anonymous requests.
func (s *Service) personalize(ctx context.Context, filter catalog.SearchFilter, page *catalog.ResultPage) *catalog.ResultPage {
	if filter.Sort != catalog.SortRelevance || filter.CustomerID == nil || len(page.Hits) == 0 {
		return page
	}

	categories, tags, err := s.favorites.FavoritesFor(ctx, filter.TenantID, *filter.CustomerID)
	if err != nil {
		s.logger.Warn("Favorites lookup failed, skipping personalization", zap.Error(err))
		return page
	}
	if len(categories) == 0 && len(tags) == 0 {
		return page
	}

	page.Hits = Rerank(page.Hits, categories, tags, personalizationWeight)
	return page
}

// Rerank blends each hit's positional base score with a boost from the
// matched fraction of favorite attributes:
//
//	score = base*(1-w) + boost*w
//
// where base is 1 - i/n for position i of n. The sort is stable so
// equal scores keep the engine's order.
func Rerank(hits []catalog.Hit, favoriteCategories, favoriteTags []string, w float64) []catalog.Hit {
	n := len(hits)
	if n == 0 {
		return hits
	}

	catSet := toSet(favoriteCategories)
	tagSet := toSet(favoriteTags)
	attrs := len(catSet) + len(tagSet)
	if attrs == 0 {
		return hits
	}

	scored := make([]catalog.Hit, n)
	copy(scored, hits)
	for i := range scored {
		base := 1 - float64(i)/float64(n)
		matched := 0
		if _, ok := catSet[strings.ToLower(scored[i].Product.Category)]; ok {
			matched++
		}
		for _, tag := range scored[i].Product.Tags {
			if _, ok := tagSet[strings.ToLower(tag)]; ok {
				matched++
			}
		}
		boost := float64(matched) / float64(attrs)
		scored[i].Score = base*(1-w) + boost*w
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	return scored
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// cacheKey builds a deterministic key from the normalized filter.
// CustomerID is excluded: cached pages are shared and personalization
// happens after the cache.
func cacheKey(f catalog.SearchFilter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%s", f.TenantID, f.Query, f.Category, f.Sort)
	fmt.Fprintf(&b, "|b=%s", strings.Join(f.Brands, ","))
	fmt.Fprintf(&b, "|c=%s", strings.Join(f.Colors, ","))
	fmt.Fprintf(&b, "|z=%s", strings.Join(f.Sizes, ","))
	fmt.Fprintf(&b, "|t=%s", strings.Join(f.Tags, ","))
	if f.PriceMin != nil {
		fmt.Fprintf(&b, "|min=%s", f.PriceMin.String())
	}
	if f.PriceMax != nil {
		fmt.Fprintf(&b, "|max=%s", f.PriceMax.String())
	}
	if f.RatingMin > 0 {
		fmt.Fprintf(&b, "|rating=%g", f.RatingMin)
	}
	if f.InStock != nil {
		fmt.Fprintf(&b, "|stock=%t", *f.InStock)
	}
	if f.OnSale != nil {
		fmt.Fprintf(&b, "|sale=%t", *f.OnSale)
	}
	fmt.Fprintf(&b, "|p=%d|s=%d", f.Page, f.PageSize)

	sum := sha256.Sum256([]byte(b.String()))
	return "search:" + hex.EncodeToString(sum[:16])
}
