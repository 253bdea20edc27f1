package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// PaymentMethodHandler manages the payment methods offered at checkout
type PaymentMethodHandler struct {
	BaseHandler
	payments *settingsapp.PaymentConfigService
	auth     *middleware.Auth
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(payments *settingsapp.PaymentConfigService, auth *middleware.Auth) *PaymentMethodHandler {
	return &PaymentMethodHandler{payments: payments, auth: auth}
}

// RegisterRoutes registers the payment method settings routes
func (h *PaymentMethodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/payment-methods", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermSettingsRead), h.List)
	g.POST("", h.auth.Require(identity.PermSettingsWrite), h.Configure)
	g.PUT("/:id/enabled", h.auth.Require(identity.PermSettingsWrite), h.SetEnabled)
	g.DELETE("/:id", h.auth.Require(identity.PermSettingsWrite), h.Remove)
}

type configurePaymentRequest struct {
	Provider      string `json:"provider" binding:"required"`
	DisplayName   string `json:"display_name" binding:"required,max=100"`
	CredentialRef string `json:"credential_ref" binding:"omitempty,max=100"`
}

// List returns the tenant's configured payment methods
func (h *PaymentMethodHandler) List(c *gin.Context) {
	actx, _ := adminFrom(c)
	methods, err := h.payments.List(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]paymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = newPaymentMethodResponse(m)
	}
	h.Success(c, out)
}

// Configure registers or replaces a provider configuration
func (h *PaymentMethodHandler) Configure(c *gin.Context) {
	var req configurePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment method: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	method, err := h.payments.Configure(c.Request.Context(), actx.Admin.TenantID,
		settings.PaymentProvider(req.Provider), req.DisplayName, req.CredentialRef)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newPaymentMethodResponse(method))
}

// SetEnabled toggles a payment method at checkout
func (h *PaymentMethodHandler) SetEnabled(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment method ID")
		return
	}
	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid toggle: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	if err := h.payments.SetEnabled(c.Request.Context(), actx.Admin.TenantID, id, *req.Enabled); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove deletes a payment method configuration
func (h *PaymentMethodHandler) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment method ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.payments.Remove(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
