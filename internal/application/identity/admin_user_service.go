package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// AdminUserService manages back-office accounts and their roles
type AdminUserService struct {
	admins   identity.AdminUserRepository
	sessions *SessionService
	logger   *zap.Logger
}

// NewAdminUserService creates a new admin user service
func NewAdminUserService(admins identity.AdminUserRepository, sessions *SessionService, logger *zap.Logger) *AdminUserService {
	return &AdminUserService{
		admins:   admins,
		sessions: sessions,
		logger:   logger,
	}
}

// Create registers a new admin account
func (s *AdminUserService) Create(ctx context.Context, input CreateAdminUserInput) (*AdminInfo, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.admins.FindByEmail(ctx, input.TenantID, email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An admin with this email already exists")
	}

	admin, err := identity.NewAdminUser(input.TenantID, input.UserID, email, input.Name, input.Role)
	if err != nil {
		return nil, err
	}
	if err := admin.SetPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.admins.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to create admin user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Admin user created",
		zap.String("email", admin.Email),
		zap.String("role", string(admin.Role)))

	info := NewAdminInfo(admin)
	return &info, nil
}

// Get returns one admin account
func (s *AdminUserService) Get(ctx context.Context, tenantID, adminID uuid.UUID) (*AdminInfo, error) {
	admin, err := s.admins.FindByID(ctx, tenantID, adminID)
	if err != nil {
		return nil, err
	}
	info := NewAdminInfo(admin)
	return &info, nil
}

// List returns a page of admin accounts
func (s *AdminUserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[AdminInfo], error) {
	admins, err := s.admins.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.admins.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]AdminInfo, len(admins))
	for i := range admins {
		infos[i] = NewAdminInfo(&admins[i])
	}
	page := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ChangeRole assigns a new role
func (s *AdminUserService) ChangeRole(ctx context.Context, input ChangeRoleInput) (*AdminInfo, error) {
	admin, err := s.admins.FindByID(ctx, input.TenantID, input.AdminID)
	if err != nil {
		return nil, err
	}
	if err := admin.ChangeRole(input.Role); err != nil {
		return nil, err
	}
	if err := s.admins.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Admin role changed",
		zap.String("email", admin.Email),
		zap.String("role", string(input.Role)))

	info := NewAdminInfo(admin)
	return &info, nil
}

// GrantPermission adds an explicit permission beyond the role bundle
func (s *AdminUserService) GrantPermission(ctx context.Context, input PermissionInput) error {
	admin, err := s.admins.FindByID(ctx, input.TenantID, input.AdminID)
	if err != nil {
		return err
	}
	if err := admin.GrantPermission(input.Permission); err != nil {
		return err
	}
	return s.admins.Save(ctx, admin)
}

// RevokePermission removes an explicit permission
func (s *AdminUserService) RevokePermission(ctx context.Context, input PermissionInput) error {
	admin, err := s.admins.FindByID(ctx, input.TenantID, input.AdminID)
	if err != nil {
		return err
	}
	admin.RevokePermission(input.Permission)
	return s.admins.Save(ctx, admin)
}

// Deactivate disables the account and revokes all of its sessions so
// in-flight requests lose admin access as caches expire.
func (s *AdminUserService) Deactivate(ctx context.Context, tenantID, adminID uuid.UUID) error {
	admin, err := s.admins.FindByID(ctx, tenantID, adminID)
	if err != nil {
		return err
	}
	admin.Deactivate()
	if err := s.admins.Save(ctx, admin); err != nil {
		return err
	}
	if err := s.sessions.RevokeAllForUser(ctx, admin.UserID); err != nil {
		s.logger.Warn("Failed to revoke sessions of deactivated admin", zap.Error(err))
	}
	s.logger.Info("Admin user deactivated", zap.String("email", admin.Email))
	return nil
}

// Activate re-enables the account
func (s *AdminUserService) Activate(ctx context.Context, tenantID, adminID uuid.UUID) error {
	admin, err := s.admins.FindByID(ctx, tenantID, adminID)
	if err != nil {
		return err
	}
	admin.Activate()
	return s.admins.Save(ctx, admin)
}
