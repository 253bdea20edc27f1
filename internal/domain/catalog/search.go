package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/shared"
)

// SortOption orders search results
type SortOption string

const (
	SortRelevance  SortOption = "relevance"
	SortPriceAsc   SortOption = "price_asc"
	SortPriceDesc  SortOption = "price_desc"
	SortNewest     SortOption = "newest"
	SortRating     SortOption = "rating"
	SortBestseller SortOption = "bestseller"
	SortPopularity SortOption = "popularity"
)

var validSortOptions = map[SortOption]struct{}{
	SortRelevance:  {},
	SortPriceAsc:   {},
	SortPriceDesc:  {},
	SortNewest:     {},
	SortRating:     {},
	SortBestseller: {},
	SortPopularity: {},
}

// ParseSortOption maps a query-string value to a sort option. Empty
// input means relevance.
func ParseSortOption(raw string) (SortOption, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SortRelevance, nil
	}
	opt := SortOption(raw)
	if _, ok := validSortOptions[opt]; !ok {
		return "", shared.NewDomainError("INVALID_SORT", "Unknown sort option: "+raw)
	}
	return opt, nil
}

const (
	// MaxPageSize caps a single result page
	MaxPageSize = 100
	// DefaultPageSize is used when the client sends none
	DefaultPageSize = 20
	// MaxQueryLength caps the free-text query
	MaxQueryLength = 200
	// MaxRating is the top of the product rating scale
	MaxRating = 5
)

// SearchFilter is the normalized storefront search request
type SearchFilter struct {
	TenantID   uuid.UUID
	Query      string
	Category   string
	Brands     []string
	Colors     []string
	Sizes      []string
	Tags       []string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	RatingMin  float64
	InStock    *bool
	OnSale     *bool
	Sort       SortOption
	Page       int
	PageSize   int
	CustomerID *uuid.UUID
}

// Normalize validates the filter and fills defaults. Page numbering is
// 1-based.
func (f *SearchFilter) Normalize() error {
	f.Query = strings.TrimSpace(f.Query)
	if len(f.Query) > MaxQueryLength {
		return shared.NewDomainError("INVALID_QUERY", "Search query is too long")
	}
	f.Category = strings.TrimSpace(f.Category)

	if f.PriceMin != nil && f.PriceMin.IsNegative() {
		return shared.NewDomainError("INVALID_QUERY", "Minimum price cannot be negative")
	}
	if f.PriceMax != nil && f.PriceMax.IsNegative() {
		return shared.NewDomainError("INVALID_QUERY", "Maximum price cannot be negative")
	}
	if f.PriceMin != nil && f.PriceMax != nil && f.PriceMin.GreaterThan(*f.PriceMax) {
		return shared.NewDomainError("INVALID_QUERY", "Minimum price cannot exceed maximum price")
	}
	if f.RatingMin < 0 || f.RatingMin > MaxRating {
		return shared.NewDomainError("INVALID_QUERY", "Rating floor must be between 0 and 5")
	}

	if f.Sort == "" {
		f.Sort = SortRelevance
	} else if _, ok := validSortOptions[f.Sort]; !ok {
		return shared.NewDomainError("INVALID_SORT", "Unknown sort option: "+string(f.Sort))
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}

	f.Brands = normalizeTerms(f.Brands)
	f.Colors = normalizeTerms(f.Colors)
	f.Sizes = normalizeTerms(f.Sizes)
	f.Tags = normalizeTerms(f.Tags)
	return nil
}

func normalizeTerms(values []string) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Offset returns the zero-based offset for the page
func (f *SearchFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
