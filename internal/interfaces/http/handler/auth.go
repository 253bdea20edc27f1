package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles admin console login, logout and own-session
// management
type AuthHandler struct {
	BaseHandler
	authSvc  *identityapp.AuthService
	sessions *identityapp.SessionService
	auth     *middleware.Auth
	cookie   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authSvc *identityapp.AuthService, sessions *identityapp.SessionService, auth *middleware.Auth, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, sessions: sessions, auth: auth, cookie: cookie}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/auth/login", h.Login)

	g := rg.Group("/admin/auth", h.auth.AdminGuard())
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	g.GET("/sessions", h.ListOwnSessions)
}

type loginRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     adminResponse `json:"admin"`
}

type adminResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func newAdminResponse(info identityapp.AdminInfo) adminResponse {
	return adminResponse{
		ID:          info.ID,
		UserID:      info.UserID,
		TenantID:    info.TenantID,
		Email:       info.Email,
		Name:        info.Name,
		Role:        string(info.Role),
		Permissions: info.Permissions,
		LastLoginAt: info.LastLoginAt,
	}
}

// Login authenticates an admin and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login request: "+err.Error())
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), identityapp.LoginInput{
		TenantID:  req.TenantID,
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, time.Until(result.ExpiresAt))
	h.Success(c, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Admin:     newAdminResponse(result.Admin),
	})
}

// Logout revokes the current session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), middleware.BearerFrom(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.setSessionCookie(c, "", -time.Hour)
	h.NoContent(c)
}

// Me returns the authenticated admin's own profile
func (h *AuthHandler) Me(c *gin.Context) {
	actx, ok := adminFrom(c)
	if !ok {
		h.Unauthorized(c, "Admin authentication required")
		return
	}
	h.Success(c, newAdminResponse(identityapp.NewAdminInfo(actx.Admin)))
}

// ListOwnSessions returns the caller's active sessions
func (h *AuthHandler) ListOwnSessions(c *gin.Context) {
	actx, ok := adminFrom(c)
	if !ok {
		h.Unauthorized(c, "Admin authentication required")
		return
	}
	sessions, err := h.sessions.ListForUser(c.Request.Context(), actx.Admin.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, lifetime time.Duration) {
	switch h.cookie.SameSite {
	case "strict":
		c.SetSameSite(http.SameSiteStrictMode)
	case "none":
		c.SetSameSite(http.SameSiteNoneMode)
	default:
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookieName, token, int(lifetime.Seconds()), h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}
