package settings

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// PaymentProvider identifies the gateway behind a payment method
type PaymentProvider string

const (
	ProviderCard        PaymentProvider = "CARD"
	ProviderMobileMoney PaymentProvider = "MOBILE_MONEY"
)

// IsValidProvider reports whether the provider is supported
func IsValidProvider(p PaymentProvider) bool {
	return p == ProviderCard || p == ProviderMobileMoney
}

// PaymentMethodConfig is the admin-facing configuration for a payment
// method offered at checkout. Gateway secrets live in environment
// config; this record only carries a reference name.
type PaymentMethodConfig struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payment_tenant_provider,priority:1"`
	Provider      PaymentProvider `gorm:"type:varchar(20);not null;uniqueIndex:idx_payment_tenant_provider,priority:2"`
	DisplayName   string          `gorm:"type:varchar(100);not null"`
	CredentialRef string          `gorm:"type:varchar(100)"`
	Enabled       bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (PaymentMethodConfig) TableName() string {
	return "payment_method_configs"
}

// NewPaymentMethodConfig creates a disabled payment method configuration
func NewPaymentMethodConfig(tenantID uuid.UUID, provider PaymentProvider, displayName, credentialRef string) (*PaymentMethodConfig, error) {
	if !IsValidProvider(provider) {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Payment provider must be CARD or MOBILE_MONEY")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Payment method display name cannot be empty")
	}

	now := time.Now()
	return &PaymentMethodConfig{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Provider:      provider,
		DisplayName:   displayName,
		CredentialRef: strings.TrimSpace(credentialRef),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Enable turns the method on at checkout
func (p *PaymentMethodConfig) Enable() {
	p.Enabled = true
	p.UpdatedAt = time.Now()
}

// Disable turns the method off at checkout
func (p *PaymentMethodConfig) Disable() {
	p.Enabled = false
	p.UpdatedAt = time.Now()
}
