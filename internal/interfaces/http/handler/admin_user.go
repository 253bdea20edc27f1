package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AdminUserHandler manages back-office accounts, roles and sessions
type AdminUserHandler struct {
	BaseHandler
	admins   *identityapp.AdminUserService
	sessions *identityapp.SessionService
	auth     *middleware.Auth
}

// NewAdminUserHandler creates a new AdminUserHandler
func NewAdminUserHandler(admins *identityapp.AdminUserService, sessions *identityapp.SessionService, auth *middleware.Auth) *AdminUserHandler {
	return &AdminUserHandler{admins: admins, sessions: sessions, auth: auth}
}

// RegisterRoutes registers the admin account routes
func (h *AdminUserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/users", h.auth.AdminGuard(), h.auth.Require(identity.PermRolesWrite))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id/role", h.ChangeRole)
	g.POST("/:id/permissions", h.GrantPermission)
	g.DELETE("/:id/permissions/:perm", h.RevokePermission)
	g.POST("/:id/deactivate", h.Deactivate)
	g.POST("/:id/activate", h.Activate)

	s := rg.Group("/admin", h.auth.AdminGuard(), h.auth.Require(identity.PermSessionsWrite))
	s.GET("/users/:id/sessions", h.ListSessions)
	s.DELETE("/sessions/:token", h.RevokeSession)
	s.DELETE("/users/:id/sessions", h.RevokeAllSessions)
}

type createAdminRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Name     string    `json:"name" binding:"required,max=100"`
	Role     string    `json:"role" binding:"required"`
	Password string    `json:"password" binding:"required,min=8"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type grantPermissionRequest struct {
	Permission string `json:"permission" binding:"required"`
}

// List returns a paginated admin account list
func (h *AdminUserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	filter := req.ToFilter()
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	actx, _ := adminFrom(c)
	page, err := h.admins.List(c.Request.Context(), actx.Admin.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]adminResponse, len(page.Items))
	for i, info := range page.Items {
		items[i] = newAdminResponse(info)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Create registers a new admin account
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid admin account: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	info, err := h.admins.Create(c.Request.Context(), identityapp.CreateAdminUserInput{
		TenantID: actx.Admin.TenantID,
		UserID:   req.UserID,
		Email:    req.Email,
		Name:     req.Name,
		Role:     identity.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newAdminResponse(*info))
}

// Get returns one admin account
func (h *AdminUserHandler) Get(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	actx, _ := adminFrom(c)
	info, err := h.admins.Get(c.Request.Context(), actx.Admin.TenantID, adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newAdminResponse(*info))
}

// ChangeRole assigns a new role to an admin
func (h *AdminUserHandler) ChangeRole(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid role change: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	info, err := h.admins.ChangeRole(c.Request.Context(), identityapp.ChangeRoleInput{
		TenantID: actx.Admin.TenantID,
		AdminID:  adminID,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newAdminResponse(*info))
}

// GrantPermission adds an explicit permission to an admin
func (h *AdminUserHandler) GrantPermission(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}
	var req grantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid permission grant: "+err.Error())
		return
	}

	actx, _ := adminFrom(c)
	err := h.admins.GrantPermission(c.Request.Context(), identityapp.PermissionInput{
		TenantID:   actx.Admin.TenantID,
		AdminID:    adminID,
		Permission: identity.Permission(req.Permission),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RevokePermission removes an explicit permission from an admin
func (h *AdminUserHandler) RevokePermission(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	actx, _ := adminFrom(c)
	err := h.admins.RevokePermission(c.Request.Context(), identityapp.PermissionInput{
		TenantID:   actx.Admin.TenantID,
		AdminID:    adminID,
		Permission: identity.Permission(c.Param("perm")),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate disables an admin account and revokes its sessions
func (h *AdminUserHandler) Deactivate(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.admins.Deactivate(c.Request.Context(), actx.Admin.TenantID, adminID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate re-enables an admin account
func (h *AdminUserHandler) Activate(c *gin.Context) {
	adminID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	actx, _ := adminFrom(c)
	if err := h.admins.Activate(c.Request.Context(), actx.Admin.TenantID, adminID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSessions returns a user's active sessions
func (h *AdminUserHandler) ListSessions(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	sessions, err := h.sessions.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}

// RevokeSession force-terminates one session by its token
func (h *AdminUserHandler) RevokeSession(c *gin.Context) {
	if err := h.sessions.RevokeSessionToken(c.Request.Context(), c.Param("token")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RevokeAllSessions terminates every session belonging to the user
func (h *AdminUserHandler) RevokeAllSessions(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.sessions.RevokeAllForUser(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
