package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// CurrencyHandler manages the tenant's currency settings
type CurrencyHandler struct {
	BaseHandler
	currencies *settingsapp.CurrencyService
	auth       *middleware.Auth
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencies *settingsapp.CurrencyService, auth *middleware.Auth) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies, auth: auth}
}

// RegisterRoutes registers the currency settings routes
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/currencies", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermSettingsRead), h.List)
	g.POST("", h.auth.Require(identity.PermSettingsWrite), h.Add)
	g.PUT("/:id/rate", h.auth.Require(identity.PermSettingsWrite), h.UpdateRate)
	g.PUT("/:id/enabled", h.auth.Require(identity.PermSettingsWrite), h.SetEnabled)
	g.POST("/:id/default", h.auth.Require(identity.PermSettingsWrite), h.SetDefault)
	g.DELETE("/:id", h.auth.Require(identity.PermSettingsWrite), h.Remove)
}

type addCurrencyRequest struct {
	Code   string          `json:"code" binding:"required,len=3"`
	Symbol string          `json:"symbol" binding:"required,max=8"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
}

type updateRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// List returns the tenant's currencies
func (h *CurrencyHandler) List(c *gin.Context) {
	actx, _ := adminFrom(c)
	currencies, err := h.currencies.List(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCurrencyResponses(currencies))
}

// Add registers a currency for the tenant
func (h *CurrencyHandler) Add(c *gin.Context) {
	var req addCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid currency: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	currency, err := h.currencies.Add(c.Request.Context(), actx.Admin.TenantID, req.Code, req.Symbol, req.Rate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newCurrencyResponse(currency))
}

// UpdateRate changes a currency's exchange rate
func (h *CurrencyHandler) UpdateRate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid currency ID")
		return
	}
	var req updateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid rate: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	currency, err := h.currencies.UpdateRate(c.Request.Context(), actx.Admin.TenantID, id, req.Rate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCurrencyResponse(currency))
}

// SetEnabled toggles a currency's availability at checkout
func (h *CurrencyHandler) SetEnabled(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid currency ID")
		return
	}
	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid toggle: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	if err := h.currencies.SetEnabled(c.Request.Context(), actx.Admin.TenantID, id, *req.Enabled); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefault makes the currency the tenant default
func (h *CurrencyHandler) SetDefault(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid currency ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.currencies.SetDefault(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove deletes a currency
func (h *CurrencyHandler) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid currency ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.currencies.Remove(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
