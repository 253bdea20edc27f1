package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// SegmentHandler manages rule-based customer segments
type SegmentHandler struct {
	BaseHandler
	segments *support.SegmentService
	auth     *middleware.Auth
}

// NewSegmentHandler creates a new SegmentHandler
func NewSegmentHandler(segments *support.SegmentService, auth *middleware.Auth) *SegmentHandler {
	return &SegmentHandler{segments: segments, auth: auth}
}

// RegisterRoutes registers the segment routes
func (h *SegmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/admin/segments", h.auth.AdminGuard())
	catalog.GET("", h.auth.Require(identity.PermUsersRead), h.List)
	catalog.POST("", h.auth.Require(identity.PermSegmentsWrite), h.Create)
	catalog.DELETE("/:id", h.auth.Require(identity.PermSegmentsWrite), h.Delete)

	memberships := rg.Group("/admin/customers/:id/segments", h.auth.AdminGuard())
	memberships.GET("", h.auth.Require(identity.PermUsersRead), h.Memberships)
	memberships.POST("/recompute", h.auth.Require(identity.PermSegmentsWrite), h.Recompute)
}

type createSegmentRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	Description     string          `json:"description" binding:"omitempty,max=500"`
	MinSpent        decimal.Decimal `json:"min_spent"`
	MinPoints       int64           `json:"min_points" binding:"omitempty,min=0"`
	MinTenureMonths int             `json:"min_tenure_months" binding:"omitempty,min=0"`
}

// List returns the tenant's segments
func (h *SegmentHandler) List(c *gin.Context) {
	actx, _ := adminFrom(c)
	segments, err := h.segments.ListSegments(c.Request.Context(), actx.Admin.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, segments)
}

// Create defines a new segment
func (h *SegmentHandler) Create(c *gin.Context) {
	var req createSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid segment: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	segment, err := h.segments.CreateSegment(c.Request.Context(), actx.Admin.TenantID,
		req.Name, req.Description, req.MinSpent, req.MinPoints, req.MinTenureMonths)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, segment)
}

// Delete removes a segment and its memberships
func (h *SegmentHandler) Delete(c *gin.Context) {
	segmentID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid segment ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.segments.DeleteSegment(c.Request.Context(), actx.Admin.TenantID, segmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Memberships returns the segments the customer belongs to
func (h *SegmentHandler) Memberships(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	memberships, err := h.segments.Memberships(c.Request.Context(), actx.Admin.TenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// Recompute re-evaluates the customer against every segment rule
func (h *SegmentHandler) Recompute(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	actx, _ := adminFrom(c)
	memberships, err := h.segments.Recompute(c.Request.Context(), actx.Admin.TenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}
