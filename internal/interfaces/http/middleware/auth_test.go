package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

type fakeSessionResolver struct {
	session *identityapp.ResolvedSession
	err     error
}

func (f *fakeSessionResolver) Resolve(_ context.Context, bearer string) (*identityapp.ResolvedSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeAdminResolver struct {
	actx       *identityapp.AdminContext
	resolveErr error
	requireErr error
}

func (f *fakeAdminResolver) ResolveAdmin(_ context.Context, bearer string) (*identityapp.AdminContext, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.actx, nil
}

func (f *fakeAdminResolver) Require(_ *identityapp.AdminContext, _ identity.Permission) error {
	return f.requireErr
}

func testSession() *identityapp.ResolvedSession {
	return &identityapp.ResolvedSession{
		Token:     "sess-token",
		UserID:    uuid.New(),
		TenantID:  uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func testAdminContext(t *testing.T) *identityapp.AdminContext {
	t.Helper()
	admin, err := identity.NewAdminUser(uuid.New(), uuid.New(), "agent@shop.test", "Agent", identity.RoleSupport)
	require.NoError(t, err)
	return &identityapp.AdminContext{Session: testSession(), Admin: admin}
}

func TestRequireSession(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		auth := NewAuth(&fakeSessionResolver{}, &fakeAdminResolver{}, zap.NewNop())
		router := gin.New()
		router.GET("/", auth.RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NO_SESSION")
	})

	t.Run("valid bearer header", func(t *testing.T) {
		session := testSession()
		auth := NewAuth(&fakeSessionResolver{session: session}, &fakeAdminResolver{}, zap.NewNop())
		router := gin.New()
		router.GET("/", auth.RequireSession(), func(c *gin.Context) {
			got := GetSession(c)
			require.NotNil(t, got)
			assert.Equal(t, session.UserID, got.UserID)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token from cookie", func(t *testing.T) {
		auth := NewAuth(&fakeSessionResolver{session: testSession()}, &fakeAdminResolver{}, zap.NewNop())
		router := gin.New()
		router.GET("/", auth.RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSessionPage(t *testing.T) {
	auth := NewAuth(&fakeSessionResolver{err: shared.ErrUnauthorized}, &fakeAdminResolver{}, zap.NewNop())
	router := gin.New()
	router.GET("/account/orders", auth.RequireSessionPage(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/account/orders?page=2", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?returnTo=%2Faccount%2Forders%3Fpage%3D2", w.Header().Get("Location"))
}

func TestAdminGuard(t *testing.T) {
	tests := []struct {
		name       string
		resolveErr error
		wantStatus int
		wantCode   string
	}{
		{"no session", identityapp.ErrNoAdminSession, http.StatusUnauthorized, "NO_SESSION"},
		{"deactivated", identityapp.ErrAdminDeactivated, http.StatusForbidden, "ACCOUNT_DEACTIVATED"},
		{"lookup failure", identityapp.ErrAdminLookup, http.StatusServiceUnavailable, "ADMIN_LOOKUP_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuth(&fakeSessionResolver{}, &fakeAdminResolver{resolveErr: tt.resolveErr}, zap.NewNop())
			router := gin.New()
			router.GET("/admin", auth.AdminGuard(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}

	t.Run("resolved admin attached to context", func(t *testing.T) {
		actx := testAdminContext(t)
		auth := NewAuth(&fakeSessionResolver{}, &fakeAdminResolver{actx: actx}, zap.NewNop())
		router := gin.New()
		router.GET("/admin", auth.AdminGuard(), func(c *gin.Context) {
			got := GetAdmin(c)
			require.NotNil(t, got)
			assert.Equal(t, actx.Admin.Email, got.Admin.Email)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	actx := testAdminContext(t)

	t.Run("denied", func(t *testing.T) {
		auth := NewAuth(&fakeSessionResolver{}, &fakeAdminResolver{actx: actx, requireErr: shared.ErrForbidden}, zap.NewNop())
		router := gin.New()
		router.DELETE("/admin/users/1", auth.AdminGuard(), auth.Require(identity.PermUsersWrite), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("granted", func(t *testing.T) {
		auth := NewAuth(&fakeSessionResolver{}, &fakeAdminResolver{actx: actx}, zap.NewNop())
		router := gin.New()
		router.DELETE("/admin/users/1", auth.AdminGuard(), auth.Require(identity.PermUsersWrite), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
