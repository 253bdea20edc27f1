package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// Context keys for the authenticated principal
const (
	SessionKey = "session"
	AdminKey   = "admin_ctx"
)

// SessionCookieName is the cookie carrying the storefront bearer token
const SessionCookieName = "mkt_session"

const bearerPrefix = "Bearer "

// SessionResolver resolves a bearer token into a session
type SessionResolver interface {
	Resolve(ctx context.Context, bearer string) (*identityapp.ResolvedSession, error)
}

// AdminResolver resolves a bearer token into an admin context and
// checks permissions
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, bearer string) (*identityapp.AdminContext, error)
	Require(actx *identityapp.AdminContext, perm identity.Permission) error
}

// Auth bundles the session and admin guards
type Auth struct {
	sessions SessionResolver
	admins   AdminResolver
	logger   *zap.Logger
}

// NewAuth creates the auth middleware set
func NewAuth(sessions SessionResolver, admins AdminResolver, logger *zap.Logger) *Auth {
	return &Auth{sessions: sessions, admins: admins, logger: logger}
}

// BearerFrom extracts the bearer token from the Authorization header,
// falling back to the session cookie.
func BearerFrom(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// StorefrontSession resolves the session when a token is present and
// attaches it to the context. Anonymous requests pass through.
func (a *Auth) StorefrontSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := BearerFrom(c)
		if bearer != "" {
			session, err := a.sessions.Resolve(c.Request.Context(), bearer)
			if err == nil && session != nil {
				c.Set(SessionKey, session)
			}
		}
		c.Next()
	}
}

// RequireSession rejects API requests that carry no valid session
func (a *Auth) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := BearerFrom(c)
		if bearer == "" {
			abortError(c, http.StatusUnauthorized, "NO_SESSION", "Authentication required")
			return
		}
		session, err := a.sessions.Resolve(c.Request.Context(), bearer)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "NO_SESSION", "Session is invalid or expired")
			return
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireSessionPage guards browser page routes. Unauthenticated
// visitors are redirected to the login page with a return target.
func (a *Auth) RequireSessionPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := BearerFrom(c)
		if bearer != "" {
			if session, err := a.sessions.Resolve(c.Request.Context(), bearer); err == nil {
				c.Set(SessionKey, session)
				c.Next()
				return
			}
		}
		returnTo := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, "/login?returnTo="+returnTo)
		c.Abort()
	}
}

// AdminGuard resolves the request into an admin context or rejects it.
// A failed lookup is reported as unavailable rather than unauthorized
// so that clients do not drop valid credentials on transient faults.
func (a *Auth) AdminGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		actx, err := a.admins.ResolveAdmin(c.Request.Context(), BearerFrom(c))
		if err != nil {
			switch {
			case errors.Is(err, identityapp.ErrAdminDeactivated):
				abortError(c, http.StatusForbidden, "ACCOUNT_DEACTIVATED", "Admin account has been deactivated")
			case errors.Is(err, identityapp.ErrAdminLookup):
				abortError(c, http.StatusServiceUnavailable, "ADMIN_LOOKUP_FAILED", "Unable to verify admin account")
			default:
				abortError(c, http.StatusUnauthorized, "NO_SESSION", "Admin authentication required")
			}
			return
		}
		c.Set(AdminKey, actx)
		c.Next()
	}
}

// Require checks that the resolved admin holds the permission
func (a *Auth) Require(perm identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		actx := GetAdmin(c)
		if actx == nil {
			abortError(c, http.StatusUnauthorized, "NO_SESSION", "Admin authentication required")
			return
		}
		if err := a.admins.Require(actx, perm); err != nil {
			a.logger.Warn("Permission denied",
				zap.String("permission", string(perm)),
				zap.String("path", c.Request.URL.Path))
			abortError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// GetSession returns the resolved storefront session, or nil
func GetSession(c *gin.Context) *identityapp.ResolvedSession {
	if v, ok := c.Get(SessionKey); ok {
		if session, ok := v.(*identityapp.ResolvedSession); ok {
			return session
		}
	}
	return nil
}

// GetAdmin returns the resolved admin context, or nil
func GetAdmin(c *gin.Context) *identityapp.AdminContext {
	if v, ok := c.Get(AdminKey); ok {
		if actx, ok := v.(*identityapp.AdminContext); ok {
			return actx
		}
	}
	return nil
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}
