package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Role represents an admin's role in the back office
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleSupport    Role = "SUPPORT"
	RoleViewer     Role = "VIEWER"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidRole reports whether the role is a known role
func IsValidRole(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleSupport, RoleViewer:
		return true
	}
	return false
}

// AdminUser represents a back-office operator.
// The role implies a fixed permission bundle; explicit permissions extend it.
type AdminUser struct {
	shared.TenantAggregateRoot
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_admin_tenant_user,priority:2"`
	Email        string    `gorm:"type:varchar(200);not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'VIEWER'"`
	Permissions  []Permission `gorm:"serializer:json"`
	PasswordHash string `gorm:"type:varchar(100)"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// NewAdminUser creates a new admin user with the given role
func NewAdminUser(tenantID, userID uuid.UUID, email, name string, role Role) (*AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Admin email is not a valid address")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Admin name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Admin name cannot exceed 100 characters")
	}
	if !IsValidRole(role) {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of SUPER_ADMIN, ADMIN, MANAGER, SUPPORT, VIEWER")
	}

	return &AdminUser{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Email:               email,
		Name:                name,
		Role:                role,
		Active:              true,
	}, nil
}

// SetPassword hashes and stores the given password
func (a *AdminUser) SetPassword(plaintext string) error {
	if len(plaintext) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (a *AdminUser) CheckPassword(plaintext string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)) == nil
}

// ChangeRole assigns a new role to the admin
func (a *AdminUser) ChangeRole(role Role) error {
	if !IsValidRole(role) {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of SUPER_ADMIN, ADMIN, MANAGER, SUPPORT, VIEWER")
	}
	a.Role = role
	a.Touch()
	a.IncrementVersion()
	return nil
}

// GrantPermission adds an explicit permission beyond the role bundle
func (a *AdminUser) GrantPermission(p Permission) error {
	if !IsValidPermission(p) {
		return shared.NewDomainError("INVALID_PERMISSION", "Unknown permission tag")
	}
	for _, existing := range a.Permissions {
		if existing == p {
			return nil
		}
	}
	a.Permissions = append(a.Permissions, p)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// RevokePermission removes an explicit permission
func (a *AdminUser) RevokePermission(p Permission) {
	for i, existing := range a.Permissions {
		if existing == p {
			a.Permissions = append(a.Permissions[:i], a.Permissions[i+1:]...)
			a.Touch()
			a.IncrementVersion()
			return
		}
	}
}

// Deactivate disables the admin account. A deactivated admin is treated
// as having no admin session.
func (a *AdminUser) Deactivate() {
	a.Active = false
	a.Touch()
	a.IncrementVersion()
}

// Activate re-enables the admin account
func (a *AdminUser) Activate() {
	a.Active = true
	a.Touch()
	a.IncrementVersion()
}

// RecordLogin stores the last successful login time
func (a *AdminUser) RecordLogin(at time.Time) {
	a.LastLoginAt = &at
	a.Touch()
}

// HasPermission reports whether the admin is granted the permission via
// its role bundle or explicit set. SUPER_ADMIN satisfies any check.
func (a *AdminUser) HasPermission(p Permission) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	if PermissionsForRole(a.Role).Has(p) {
		return true
	}
	for _, explicit := range a.Permissions {
		if explicit == p {
			return true
		}
	}
	return false
}

// EffectivePermissions returns the union of role-derived and explicit permissions
func (a *AdminUser) EffectivePermissions() PermissionSet {
	if a.Role == RoleSuperAdmin {
		return NewPermissionSet(AllPermissions...)
	}
	set := PermissionsForRole(a.Role)
	merged := make(PermissionSet, len(set)+len(a.Permissions))
	for p := range set {
		merged[p] = struct{}{}
	}
	for _, p := range a.Permissions {
		merged[p] = struct{}{}
	}
	return merged
}
