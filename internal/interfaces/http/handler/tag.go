package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// TagHandler manages the tag catalog and tag assignments
type TagHandler struct {
	BaseHandler
	tags *support.TagService
	auth *middleware.Auth
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tags *support.TagService, auth *middleware.Auth) *TagHandler {
	return &TagHandler{tags: tags, auth: auth}
}

// RegisterRoutes registers the tag routes
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/admin/tags", h.auth.AdminGuard())
	catalog.GET("", h.auth.Require(identity.PermUsersRead), h.List)
	catalog.POST("", h.auth.Require(identity.PermTagsWrite), h.Create)
	catalog.DELETE("/:id", h.auth.Require(identity.PermTagsWrite), h.Delete)

	assignments := rg.Group("/admin/customers/:id/tags", h.auth.AdminGuard())
	assignments.GET("", h.auth.Require(identity.PermUsersRead), h.CustomerTags)
	assignments.POST("/:tagId", h.auth.Require(identity.PermTagsWrite), h.Assign)
	assignments.DELETE("/:tagId", h.auth.Require(identity.PermTagsWrite), h.Unassign)
}

type createTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// List returns the tenant's tag catalog
func (h *TagHandler) List(c *gin.Context) {
	actx, _ := adminFrom(c)
	tags, err := h.tags.ListTags(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// Create adds a tag to the catalog
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid tag: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	tag, err := h.tags.CreateTag(c.Request.Context(), actx.Admin.TenantID, req.Name, req.Color)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// Delete removes a tag and all its assignments
func (h *TagHandler) Delete(c *gin.Context) {
	tagID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.tags.DeleteTag(c.Request.Context(), actx.Admin.TenantID, tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CustomerTags returns the tags assigned to the customer
func (h *TagHandler) CustomerTags(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	tags, err := h.tags.CustomerTags(c.Request.Context(), actx.Admin.TenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// Assign attaches a tag to the customer
func (h *TagHandler) Assign(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.tags.Assign(c.Request.Context(), actx.Admin.TenantID, customerID, tagID, actx.Admin.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unassign detaches a tag from the customer
func (h *TagHandler) Unassign(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.tags.Unassign(c.Request.Context(), actx.Admin.TenantID, customerID, tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
