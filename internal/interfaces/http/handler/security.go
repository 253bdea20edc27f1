package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// SecurityHandler manages the tenant's security policy
type SecurityHandler struct {
	BaseHandler
	policies *settingsapp.SecurityPolicyService
	auth     *middleware.Auth
}

// NewSecurityHandler creates a new SecurityHandler
func NewSecurityHandler(policies *settingsapp.SecurityPolicyService, auth *middleware.Auth) *SecurityHandler {
	return &SecurityHandler{policies: policies, auth: auth}
}

// RegisterRoutes registers the security policy routes
func (h *SecurityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/security", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermSettingsRead), h.Get)
	g.PUT("", h.auth.Require(identity.PermSettingsWrite), h.Update)
}

type updatePolicyRequest struct {
	MinPasswordLength int      `json:"min_password_length" binding:"required,min=8"`
	RequireMFA        bool     `json:"require_mfa"`
	SessionLifetime   int64    `json:"session_lifetime_seconds" binding:"required,min=60"`
	MaxLoginAttempts  int      `json:"max_login_attempts" binding:"required,min=1"`
	LockoutMinutes    int      `json:"lockout_minutes" binding:"required,min=1"`
	IPAllowlist       []string `json:"ip_allowlist"`
}

// Get returns the effective security policy
func (h *SecurityHandler) Get(c *gin.Context) {
	actx, _ := adminFrom(c)
	policy, err := h.policies.Get(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newSecurityPolicyResponse(policy))
}

// Update replaces the security policy
func (h *SecurityHandler) Update(c *gin.Context) {
	var req updatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid policy: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	policy, err := h.policies.Update(c.Request.Context(), actx.Admin.TenantID, settingsapp.UpdatePolicyInput{
		MinPasswordLength: req.MinPasswordLength,
		RequireMFA:        req.RequireMFA,
		SessionLifetime:   time.Duration(req.SessionLifetime) * time.Second,
		MaxLoginAttempts:  req.MaxLoginAttempts,
		LockoutMinutes:    req.LockoutMinutes,
		IPAllowlist:       req.IPAllowlist,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newSecurityPolicyResponse(policy))
}
