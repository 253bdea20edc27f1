// Package search provides the HTTP adapter for the product search engine.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

const (
	searchPath  = "/v1/indexes/%s/search"
	suggestPath = "/v1/indexes/%s/suggest"
)

// HTTPEngine queries the hosted search engine over HTTP. It implements
// the search application's Engine port.
type HTTPEngine struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPEngine creates a new HTTPEngine
func NewHTTPEngine(cfg config.SearchConfig) *HTTPEngine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPEngine{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchRequest struct {
	Query     string            `json:"q"`
	Category  string            `json:"category,omitempty"`
	Brands    []string          `json:"brands,omitempty"`
	Colors    []string          `json:"colors,omitempty"`
	Sizes     []string          `json:"sizes,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	PriceMin  *string           `json:"price_min,omitempty"`
	PriceMax  *string           `json:"price_max,omitempty"`
	RatingMin *float64          `json:"rating_min,omitempty"`
	InStock   *bool             `json:"in_stock,omitempty"`
	OnSale    *bool             `json:"on_sale,omitempty"`
	Sort      string            `json:"sort"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
	Facets    []string          `json:"facets,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
}

type searchResponse struct {
	Hits []struct {
		Product catalog.Product `json:"product"`
		Score   float64         `json:"score"`
	} `json:"hits"`
	Total      int64                       `json:"total"`
	Facets     map[string]map[string]int64 `json:"facets"`
	TookMillis int64                       `json:"took_ms"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Search runs the query against the tenant's index
func (e *HTTPEngine) Search(ctx context.Context, filter catalog.SearchFilter) (*catalog.ResultPage, error) {
	req := searchRequest{
		Query:    filter.Query,
		Category: filter.Category,
		Brands:   filter.Brands,
		Colors:   filter.Colors,
		Sizes:    filter.Sizes,
		Tags:     filter.Tags,
		InStock:  filter.InStock,
		OnSale:   filter.OnSale,
		Sort:     string(filter.Sort),
		Offset:   filter.Offset(),
		Limit:    filter.PageSize,
		Facets:   []string{"category", "brand", "tags"},
	}
	if filter.PriceMin != nil {
		s := filter.PriceMin.String()
		req.PriceMin = &s
	}
	if filter.PriceMax != nil {
		s := filter.PriceMax.String()
		req.PriceMax = &s
	}
	if filter.RatingMin > 0 {
		r := filter.RatingMin
		req.RatingMin = &r
	}

	var resp searchResponse
	path := fmt.Sprintf(searchPath, filter.TenantID)
	if err := e.doRequest(ctx, path, req, &resp); err != nil {
		return nil, err
	}

	hits := make([]catalog.Hit, len(resp.Hits))
	for i, h := range resp.Hits {
		hits[i] = catalog.Hit{Product: h.Product, Score: h.Score}
	}
	return &catalog.ResultPage{
		Hits:       hits,
		Total:      resp.Total,
		Facets:     resp.Facets,
		TookMillis: resp.TookMillis,
	}, nil
}

// Suggest returns autocomplete candidates for a prefix
func (e *HTTPEngine) Suggest(ctx context.Context, tenantID uuid.UUID, prefix string, limit int) ([]string, error) {
	req := map[string]interface{}{
		"prefix": prefix,
		"limit":  limit,
	}

	var resp suggestResponse
	path := fmt.Sprintf(suggestPath, tenantID)
	if err := e.doRequest(ctx, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

func (e *HTTPEngine) doRequest(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("search engine: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("search engine: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("search engine: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("search engine: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("search engine: unexpected status %d: %s", resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("search engine: failed to decode response: %w", err)
	}
	return nil
}
