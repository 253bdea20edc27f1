package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Admin guard error codes. The middleware maps these to distinct
// redirect reasons.
var (
	ErrNoAdminSession   = shared.NewDomainError("NO_SESSION", "No active admin session")
	ErrAdminDeactivated = shared.NewDomainError("ACCOUNT_DEACTIVATED", "Admin account has been deactivated")
	ErrAdminLookup      = shared.NewDomainError("ADMIN_LOOKUP_FAILED", "Failed to resolve admin account")
)

// AdminContext is the authenticated admin attached to a request
type AdminContext struct {
	Session *ResolvedSession
	Admin   *identity.AdminUser
}

// AdminAuthService resolves sessions into admin accounts and checks
// permissions
type AdminAuthService struct {
	sessions *SessionService
	admins   identity.AdminUserRepository
	logger   *zap.Logger
}

// NewAdminAuthService creates a new admin authorization service
func NewAdminAuthService(sessions *SessionService, admins identity.AdminUserRepository, logger *zap.Logger) *AdminAuthService {
	return &AdminAuthService{
		sessions: sessions,
		admins:   admins,
		logger:   logger,
	}
}

// ResolveAdmin resolves a bearer token into an admin context. An
// unknown session, a user without an admin account, or a deactivated
// account all fail resolution; only the deactivated case is reported
// distinctly.
func (s *AdminAuthService) ResolveAdmin(ctx context.Context, bearer string) (*AdminContext, error) {
	session, err := s.sessions.Resolve(ctx, bearer)
	if err != nil {
		return nil, ErrNoAdminSession
	}

	admin, err := s.admins.FindByUserID(ctx, session.TenantID, session.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrNoAdminSession
		}
		var derr *shared.DomainError
		if errors.As(err, &derr) && derr.Code == shared.ErrNotFound.Code {
			return nil, ErrNoAdminSession
		}
		s.logger.Error("Admin lookup failed", zap.Error(err))
		return nil, ErrAdminLookup
	}
	if !admin.Active {
		return nil, ErrAdminDeactivated
	}

	return &AdminContext{Session: session, Admin: admin}, nil
}

// Require checks that the admin holds the permission
func (s *AdminAuthService) Require(actx *AdminContext, perm identity.Permission) error {
	if actx == nil || actx.Admin == nil {
		return shared.ErrUnauthorized
	}
	if !actx.Admin.HasPermission(perm) {
		s.logger.Warn("Permission denied",
			zap.String("admin", actx.Admin.Email),
			zap.String("permission", string(perm)))
		return shared.ErrForbidden
	}
	return nil
}
