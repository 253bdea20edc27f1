package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/identity"
)

// LoginInput contains the input for an admin console login
type LoginInput struct {
	TenantID  uuid.UUID
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     AdminInfo
}

// AdminInfo contains basic admin information returned after login
type AdminInfo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TenantID    uuid.UUID
	Email       string
	Name        string
	Role        identity.Role
	Permissions []string
	LastLoginAt *time.Time
}

// NewAdminInfo maps a domain admin user to its API shape
func NewAdminInfo(admin *identity.AdminUser) AdminInfo {
	perms := admin.EffectivePermissions().List()
	strs := make([]string, len(perms))
	for i, p := range perms {
		strs[i] = string(p)
	}
	return AdminInfo{
		ID:          admin.ID,
		UserID:      admin.UserID,
		TenantID:    admin.TenantID,
		Email:       admin.Email,
		Name:        admin.Name,
		Role:        admin.Role,
		Permissions: strs,
		LastLoginAt: admin.LastLoginAt,
	}
}

// ResolvedSession is the cached view of an authenticated session
type ResolvedSession struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionInfo is the admin-facing view of an active session
type SessionInfo struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateAdminUserInput contains the input for creating an admin user
type CreateAdminUserInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Email    string
	Name     string
	Role     identity.Role
	Password string
}

// ChangeRoleInput contains the input for a role change
type ChangeRoleInput struct {
	TenantID uuid.UUID
	AdminID  uuid.UUID
	Role     identity.Role
}

// PermissionInput grants or revokes one explicit permission
type PermissionInput struct {
	TenantID   uuid.UUID
	AdminID    uuid.UUID
	Permission identity.Permission
}
