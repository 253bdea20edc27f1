package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the storefront-facing shape of a catalog item as returned
// by the search engine. The engine is the source of truth for the
// index; this type is what the rest of the system works with.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ImageKey    string          `json:"image_key"`
	ImageURL    string          `json:"image_url,omitempty"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	InStock     bool            `json:"in_stock"`
	OnSale      bool            `json:"on_sale"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Hit pairs a product with the relevance score the engine assigned
type Hit struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// ResultPage is one page of search hits plus facet counts, keyed by
// facet name and then by value within that facet.
type ResultPage struct {
	Hits       []Hit                       `json:"hits"`
	Total      int64                       `json:"total"`
	Page       int                         `json:"page"`
	PageSize   int                         `json:"page_size"`
	Facets     map[string]map[string]int64 `json:"facets,omitempty"`
	Fallback   bool                        `json:"fallback"`
	TookMillis int64                       `json:"took_ms"`
}
