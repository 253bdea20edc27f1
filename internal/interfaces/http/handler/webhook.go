package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// WebhookHandler manages webhook endpoints and notification rules
type WebhookHandler struct {
	BaseHandler
	webhooks *settingsapp.WebhookService
	auth     *middleware.Auth
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhooks *settingsapp.WebhookService, auth *middleware.Auth) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, auth: auth}
}

// RegisterRoutes registers the webhook settings routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/webhooks", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermSettingsRead), h.ListEndpoints)
	g.POST("", h.auth.Require(identity.PermSettingsWrite), h.CreateEndpoint)
	g.POST("/:id/test", h.auth.Require(identity.PermSettingsWrite), h.TestFire)
	g.DELETE("/:id", h.auth.Require(identity.PermSettingsWrite), h.DeleteEndpoint)

	r := rg.Group("/admin/settings/notification-rules", h.auth.AdminGuard())
	r.GET("", h.auth.Require(identity.PermSettingsRead), h.ListRules)
	r.POST("", h.auth.Require(identity.PermSettingsWrite), h.CreateRule)
	r.DELETE("/:id", h.auth.Require(identity.PermSettingsWrite), h.DeleteRule)
}

type createEndpointRequest struct {
	URL    string   `json:"url" binding:"required,url"`
	Events []string `json:"events" binding:"required,min=1"`
}

type createRuleRequest struct {
	Event   string `json:"event" binding:"required"`
	Channel string `json:"channel" binding:"omitempty,max=50"`
}

// ListEndpoints returns the tenant's webhook endpoints without secrets
func (h *WebhookHandler) ListEndpoints(c *gin.Context) {
	actx, _ := adminFrom(c)
	endpoints, err := h.webhooks.ListEndpoints(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]webhookEndpointResponse, len(endpoints))
	for i, e := range endpoints {
		out[i] = newWebhookEndpointResponse(e, false)
	}
	h.Success(c, out)
}

// CreateEndpoint registers an endpoint. The signing secret is included
// in this response only.
func (h *WebhookHandler) CreateEndpoint(c *gin.Context) {
	var req createEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid webhook: "+err.Error())
		return
	}

	events := make([]settings.WebhookEvent, len(req.Events))
	for i, e := range req.Events {
		events[i] = settings.WebhookEvent(e)
	}

	actx, _ := adminFrom(c)
	endpoint, err := h.webhooks.CreateEndpoint(c.Request.Context(), actx.Admin.TenantID, req.URL, events)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newWebhookEndpointResponse(endpoint, true))
}

// TestFire sends a test delivery to the endpoint
func (h *WebhookHandler) TestFire(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.webhooks.TestFire(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteEndpoint removes a webhook endpoint
func (h *WebhookHandler) DeleteEndpoint(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.webhooks.DeleteEndpoint(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListRules returns the tenant's notification rules
func (h *WebhookHandler) ListRules(c *gin.Context) {
	actx, _ := adminFrom(c)
	rules, err := h.webhooks.ListRules(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]notificationRuleResponse, len(rules))
	for i, r := range rules {
		out[i] = newNotificationRuleResponse(r)
	}
	h.Success(c, out)
}

// CreateRule routes an event to the admin notification channel
func (h *WebhookHandler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid rule: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	rule, err := h.webhooks.CreateRule(c.Request.Context(), actx.Admin.TenantID,
		settings.WebhookEvent(req.Event), req.Channel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newNotificationRuleResponse(rule))
}

// DeleteRule removes a notification rule
func (h *WebhookHandler) DeleteRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid rule ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.webhooks.DeleteRule(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
