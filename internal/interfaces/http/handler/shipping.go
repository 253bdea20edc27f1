package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// ShippingHandler manages shipping zones and their delivery methods
type ShippingHandler struct {
	BaseHandler
	shipping *settingsapp.ShippingService
	auth     *middleware.Auth
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(shipping *settingsapp.ShippingService, auth *middleware.Auth) *ShippingHandler {
	return &ShippingHandler{shipping: shipping, auth: auth}
}

// RegisterRoutes registers the shipping settings routes
func (h *ShippingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/shipping", h.auth.AdminGuard())
	g.GET("/zones", h.auth.Require(identity.PermSettingsRead), h.ListZones)
	g.POST("/zones", h.auth.Require(identity.PermSettingsWrite), h.CreateZone)
	g.DELETE("/zones/:id", h.auth.Require(identity.PermSettingsWrite), h.DeleteZone)
	g.GET("/zones/:id/methods", h.auth.Require(identity.PermSettingsRead), h.ListMethods)
	g.POST("/zones/:id/methods", h.auth.Require(identity.PermSettingsWrite), h.AddMethod)
	g.PUT("/methods/:id/enabled", h.auth.Require(identity.PermSettingsWrite), h.SetMethodEnabled)
	g.DELETE("/methods/:id", h.auth.Require(identity.PermSettingsWrite), h.DeleteMethod)
}

type createZoneRequest struct {
	Name      string   `json:"name" binding:"required,max=100"`
	Countries []string `json:"countries" binding:"required,min=1"`
}

type addMethodRequest struct {
	Name    string          `json:"name" binding:"required,max=100"`
	Fee     decimal.Decimal `json:"fee"`
	EtaDays int             `json:"eta_days" binding:"omitempty,min=0"`
}

// ListZones returns the tenant's shipping zones
func (h *ShippingHandler) ListZones(c *gin.Context) {
	actx, _ := adminFrom(c)
	zones, err := h.shipping.ListZones(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]shippingZoneResponse, len(zones))
	for i, z := range zones {
		out[i] = newShippingZoneResponse(z)
	}
	h.Success(c, out)
}

// CreateZone defines a shipping zone from a country list
func (h *ShippingHandler) CreateZone(c *gin.Context) {
	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid zone: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	zone, err := h.shipping.CreateZone(c.Request.Context(), actx.Admin.TenantID, req.Name, req.Countries)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newShippingZoneResponse(zone))
}

// DeleteZone removes a zone and its methods
func (h *ShippingHandler) DeleteZone(c *gin.Context) {
	zoneID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.shipping.DeleteZone(c.Request.Context(), actx.Admin.TenantID, zoneID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMethods returns the zone's delivery methods ordered by fee
func (h *ShippingHandler) ListMethods(c *gin.Context) {
	zoneID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	actx, _ := adminFrom(c)
	methods, err := h.shipping.ListMethods(c.Request.Context(), actx.Admin.TenantID, zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]shippingMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = newShippingMethodResponse(m)
	}
	h.Success(c, out)
}

// AddMethod adds a delivery method to the zone
func (h *ShippingHandler) AddMethod(c *gin.Context) {
	zoneID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID")
		return
	}
	var req addMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid method: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	method, err := h.shipping.AddMethod(c.Request.Context(), actx.Admin.TenantID, zoneID, req.Name, req.Fee, req.EtaDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newShippingMethodResponse(method))
}

// SetMethodEnabled toggles a delivery method
func (h *ShippingHandler) SetMethodEnabled(c *gin.Context) {
	methodID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid method ID")
		return
	}
	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid toggle: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	if err := h.shipping.SetMethodEnabled(c.Request.Context(), actx.Admin.TenantID, methodID, *req.Enabled); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteMethod removes a delivery method
func (h *ShippingHandler) DeleteMethod(c *gin.Context) {
	methodID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid method ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.shipping.DeleteMethod(c.Request.Context(), actx.Admin.TenantID, methodID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
