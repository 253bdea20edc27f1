package settings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Language is admin-configured reference data. The exactly-one-default
// invariant mirrors Currency.
type Language struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_language_tenant_tag,priority:1"`
	Tag       string    `gorm:"type:varchar(35);not null;uniqueIndex:idx_language_tenant_tag,priority:2"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Language) TableName() string {
	return "languages"
}

// NewLanguage creates a language after validating the BCP 47 tag
func NewLanguage(tenantID uuid.UUID, tag, name string) (*Language, error) {
	tag = strings.TrimSpace(tag)
	parsed, err := language.Parse(tag)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_LANGUAGE", "Language must be a valid BCP 47 tag")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LANGUAGE", "Language display name cannot be empty")
	}

	now := time.Now()
	return &Language{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Tag:       parsed.String(),
		Name:      name,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Disable marks the language unavailable. The default language cannot
// be disabled.
func (l *Language) Disable() error {
	if l.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default language cannot be disabled")
	}
	l.Enabled = false
	l.UpdatedAt = time.Now()
	return nil
}

// Enable marks the language available
func (l *Language) Enable() {
	l.Enabled = true
	l.UpdatedAt = time.Now()
}
