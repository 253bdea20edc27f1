package settings

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// SecurityPolicy holds the per-tenant authentication policy applied by
// the admin login and session services.
type SecurityPolicy struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MinPasswordLength int       `gorm:"not null;default:8"`
	RequireMFA        bool      `gorm:"not null;default:false"`
	SessionLifetime   int64     `gorm:"not null"`
	MaxLoginAttempts  int       `gorm:"not null;default:5"`
	LockoutMinutes    int       `gorm:"not null;default:15"`
	IPAllowlist       []string  `gorm:"serializer:json"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (SecurityPolicy) TableName() string {
	return "security_policies"
}

// DefaultSecurityPolicy returns the policy applied before an admin
// customizes anything. Sessions last seven days.
func DefaultSecurityPolicy(tenantID uuid.UUID) *SecurityPolicy {
	now := time.Now()
	return &SecurityPolicy{
		ID:                uuid.New(),
		TenantID:          tenantID,
		MinPasswordLength: 8,
		SessionLifetime:   int64(7 * 24 * time.Hour / time.Second),
		MaxLoginAttempts:  5,
		LockoutMinutes:    15,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SessionDuration returns the configured session lifetime
func (p *SecurityPolicy) SessionDuration() time.Duration {
	return time.Duration(p.SessionLifetime) * time.Second
}

// Update applies the new values after validation
func (p *SecurityPolicy) Update(minPasswordLength int, requireMFA bool, sessionLifetime time.Duration, maxLoginAttempts, lockoutMinutes int) error {
	if minPasswordLength < 8 {
		return shared.NewDomainError("INVALID_POLICY", "Minimum password length cannot be below 8")
	}
	if sessionLifetime < time.Hour {
		return shared.NewDomainError("INVALID_POLICY", "Session lifetime must be at least one hour")
	}
	if maxLoginAttempts < 1 {
		return shared.NewDomainError("INVALID_POLICY", "Max login attempts must be at least 1")
	}
	if lockoutMinutes < 1 {
		return shared.NewDomainError("INVALID_POLICY", "Lockout duration must be at least one minute")
	}

	p.MinPasswordLength = minPasswordLength
	p.RequireMFA = requireMFA
	p.SessionLifetime = int64(sessionLifetime / time.Second)
	p.MaxLoginAttempts = maxLoginAttempts
	p.LockoutMinutes = lockoutMinutes
	p.UpdatedAt = time.Now()
	return nil
}

// AllowsIP reports whether the address passes the allowlist. An empty
// allowlist permits every address.
func (p *SecurityPolicy) AllowsIP(ip string) bool {
	if len(p.IPAllowlist) == 0 {
		return true
	}
	for _, allowed := range p.IPAllowlist {
		if allowed == ip {
			return true
		}
	}
	return false
}
