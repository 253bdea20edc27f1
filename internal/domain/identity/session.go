package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// RenewalWindow is how close to expiry a session must be before a
// lookup opportunistically extends it.
const RenewalWindow = 24 * time.Hour

// Session represents an authenticated session persisted alongside the
// short-TTL cache entry.
type Session struct {
	Token     string    `gorm:"type:varchar(64);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IP        string    `gorm:"type:varchar(45)"`
	UserAgent string    `gorm:"type:varchar(500)"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates a session valid for the given lifetime
func NewSession(userID, tenantID uuid.UUID, ip, userAgent string, lifetime time.Duration) (*Session, error) {
	if lifetime <= 0 {
		return nil, shared.NewDomainError("INVALID_LIFETIME", "Session lifetime must be positive")
	}
	now := time.Now()
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		TenantID:  tenantID,
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: now.Add(lifetime),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsExpired reports whether the session expired at the given instant
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ShouldRenew reports whether the session is within the renewal window
// of its expiry and still valid.
func (s *Session) ShouldRenew(now time.Time) bool {
	if s.IsExpired(now) {
		return false
	}
	return s.ExpiresAt.Sub(now) <= RenewalWindow
}

// Renew extends the session by the given lifetime from now
func (s *Session) Renew(now time.Time, lifetime time.Duration) {
	s.ExpiresAt = now.Add(lifetime)
	s.UpdatedAt = now
}
