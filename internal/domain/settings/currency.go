package settings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Currency is admin-configured reference data. Exactly one currency per
// tenant is the default at any time; SetDefault operations swap the
// flag transactionally at the repository level.
type Currency struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_currency_tenant_code,priority:1"`
	Code      string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_currency_tenant_code,priority:2"`
	Symbol    string          `gorm:"type:varchar(8);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,8);not null;default:1"`
	Enabled   bool            `gorm:"not null;default:true"`
	IsDefault bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// NewCurrency creates a currency after validating the ISO 4217 code
func NewCurrency(tenantID uuid.UUID, code, symbol string, rate decimal.Decimal) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := currency.ParseISO(code); err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be a valid ISO 4217 code")
	}
	if symbol == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency symbol cannot be empty")
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Exchange rate must be positive")
	}

	now := time.Now()
	return &Currency{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Code:      code,
		Symbol:    symbol,
		Rate:      rate,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateRate changes the exchange rate
func (c *Currency) UpdateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_CURRENCY", "Exchange rate must be positive")
	}
	c.Rate = rate
	c.UpdatedAt = time.Now()
	return nil
}

// Disable marks the currency unavailable. The default currency cannot
// be disabled.
func (c *Currency) Disable() error {
	if c.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default currency cannot be disabled")
	}
	c.Enabled = false
	c.UpdatedAt = time.Now()
	return nil
}

// Enable marks the currency available
func (c *Currency) Enable() {
	c.Enabled = true
	c.UpdatedAt = time.Now()
}
