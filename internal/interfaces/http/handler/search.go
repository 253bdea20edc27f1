package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	searchapp "github.com/marketplace/backend/internal/application/search"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// TenantIDHeader identifies the storefront tenant on public routes
const TenantIDHeader = "X-Tenant-ID"

// SearchHandler serves storefront product search and suggestions
type SearchHandler struct {
	BaseHandler
	search *searchapp.Service
	auth   *middleware.Auth
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(search *searchapp.Service, auth *middleware.Auth) *SearchHandler {
	return &SearchHandler{search: search, auth: auth}
}

// RegisterRoutes registers the storefront search routes. The session
// middleware is optional here: anonymous shoppers search too, signed-in
// ones get personalized ranking.
func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/search", h.auth.StorefrontSession())
	g.GET("", h.Search)
	g.GET("/suggest", h.Suggest)
}

type searchRequest struct {
	Query     string   `form:"q" binding:"omitempty,max=200"`
	Category  string   `form:"category"`
	Brands    []string `form:"brands"`
	Colors    []string `form:"colors"`
	Sizes     []string `form:"sizes"`
	Tags      []string `form:"tags"`
	PriceMin  string   `form:"price_min"`
	PriceMax  string   `form:"price_max"`
	RatingMin float64  `form:"rating_min" binding:"omitempty,min=0,max=5"`
	InStock   *bool    `form:"in_stock"`
	OnSale    *bool    `form:"on_sale"`
	Sort      string   `form:"sort"`
	Page      int      `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int      `form:"page_size,default=24" binding:"omitempty,min=1,max=100"`
}

func tenantFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader(TenantIDHeader))
	return id, err == nil
}

// Search runs a product search for the tenant's storefront
func (h *SearchHandler) Search(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		h.BadRequest(c, "Missing or invalid tenant header")
		return
	}

	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid search parameters: "+err.Error())
		return
	}

	sort, err := catalog.ParseSortOption(req.Sort)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := catalog.SearchFilter{
		TenantID:  tenantID,
		Query:     req.Query,
		Category:  req.Category,
		Brands:    req.Brands,
		Colors:    req.Colors,
		Sizes:     req.Sizes,
		Tags:      req.Tags,
		RatingMin: req.RatingMin,
		InStock:   req.InStock,
		OnSale:    req.OnSale,
		Sort:      sort,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.PriceMin != "" {
		min, err := decimal.NewFromString(req.PriceMin)
		if err != nil {
			h.BadRequest(c, "Invalid minimum price")
			return
		}
		filter.PriceMin = &min
	}
	if req.PriceMax != "" {
		max, err := decimal.NewFromString(req.PriceMax)
		if err != nil {
			h.BadRequest(c, "Invalid maximum price")
			return
		}
		filter.PriceMax = &max
	}
	if session := middleware.GetSession(c); session != nil {
		filter.CustomerID = &session.UserID
	}

	page, err := h.search.Search(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("X-Search-Fallback", strconv.FormatBool(page.Fallback))
	h.Success(c, page)
}

// Suggest returns typeahead completions for a query prefix
func (h *SearchHandler) Suggest(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		h.BadRequest(c, "Missing or invalid tenant header")
		return
	}

	prefix := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	suggestions, err := h.search.Suggest(c.Request.Context(), tenantID, prefix, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}
