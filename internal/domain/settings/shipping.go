package settings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/shared"
)

// ShippingZone groups destination countries that share shipping methods
type ShippingZone struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Countries []string  `gorm:"serializer:json"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ShippingZone) TableName() string {
	return "shipping_zones"
}

// NewShippingZone creates a zone covering the given ISO country codes
func NewShippingZone(tenantID uuid.UUID, name string, countries []string) (*ShippingZone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ZONE", "Shipping zone name cannot be empty")
	}
	if len(countries) == 0 {
		return nil, shared.NewDomainError("INVALID_ZONE", "Shipping zone must cover at least one country")
	}
	normalized := make([]string, 0, len(countries))
	seen := make(map[string]struct{}, len(countries))
	for _, country := range countries {
		country = strings.ToUpper(strings.TrimSpace(country))
		if len(country) != 2 {
			return nil, shared.NewDomainError("INVALID_ZONE", "Countries must be two-letter ISO codes")
		}
		if _, dup := seen[country]; dup {
			continue
		}
		seen[country] = struct{}{}
		normalized = append(normalized, country)
	}

	now := time.Now()
	return &ShippingZone{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Countries: normalized,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Covers reports whether the zone includes the country code
func (z *ShippingZone) Covers(country string) bool {
	country = strings.ToUpper(strings.TrimSpace(country))
	for _, c := range z.Countries {
		if c == country {
			return true
		}
	}
	return false
}

// ShippingMethod is a delivery option within a zone
type ShippingMethod struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ZoneID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Fee       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EtaDays   int             `gorm:"not null;default:0"`
	Enabled   bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ShippingMethod) TableName() string {
	return "shipping_methods"
}

// NewShippingMethod creates a delivery option for a zone
func NewShippingMethod(tenantID, zoneID uuid.UUID, name string, fee decimal.Decimal, etaDays int) (*ShippingMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_METHOD", "Shipping method name cannot be empty")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Shipping fee cannot be negative")
	}
	if etaDays < 0 {
		return nil, shared.NewDomainError("INVALID_METHOD", "Delivery estimate cannot be negative")
	}

	now := time.Now()
	return &ShippingMethod{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ZoneID:    zoneID,
		Name:      name,
		Fee:       fee,
		EtaDays:   etaDays,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
