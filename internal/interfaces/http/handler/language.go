package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// LanguageHandler manages the tenant's storefront languages
type LanguageHandler struct {
	BaseHandler
	languages *settingsapp.LanguageService
	auth      *middleware.Auth
}

// NewLanguageHandler creates a new LanguageHandler
func NewLanguageHandler(languages *settingsapp.LanguageService, auth *middleware.Auth) *LanguageHandler {
	return &LanguageHandler{languages: languages, auth: auth}
}

// RegisterRoutes registers the language settings routes
func (h *LanguageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/settings/languages", h.auth.AdminGuard())
	g.GET("", h.auth.Require(identity.PermSettingsRead), h.List)
	g.POST("", h.auth.Require(identity.PermSettingsWrite), h.Add)
	g.PUT("/:id/enabled", h.auth.Require(identity.PermSettingsWrite), h.SetEnabled)
	g.POST("/:id/default", h.auth.Require(identity.PermSettingsWrite), h.SetDefault)
	g.DELETE("/:id", h.auth.Require(identity.PermSettingsWrite), h.Remove)
}

type addLanguageRequest struct {
	Tag  string `json:"tag" binding:"required,max=35"`
	Name string `json:"name" binding:"required,max=100"`
}

// List returns the tenant's languages
func (h *LanguageHandler) List(c *gin.Context) {
	actx, _ := adminFrom(c)
	languages, err := h.languages.List(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newLanguageResponses(languages))
}

// Add registers a storefront language
func (h *LanguageHandler) Add(c *gin.Context) {
	var req addLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid language: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	language, err := h.languages.Add(c.Request.Context(), actx.Admin.TenantID, req.Tag, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newLanguageResponse(language))
}

// SetEnabled toggles a language's availability
func (h *LanguageHandler) SetEnabled(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid language ID")
		return
	}
	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid toggle: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	if err := h.languages.SetEnabled(c.Request.Context(), actx.Admin.TenantID, id, *req.Enabled); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefault makes the language the tenant default
func (h *LanguageHandler) SetDefault(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid language ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.languages.SetDefault(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove deletes a language
func (h *LanguageHandler) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid language ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.languages.Remove(c.Request.Context(), actx.Admin.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
