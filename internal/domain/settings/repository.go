package settings

import (
	"context"

	"github.com/google/uuid"
)

// CurrencyRepository persists tenant currencies. SetDefault swaps the
// default flag in a single transaction so exactly one row per tenant
// carries it.
type CurrencyRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Currency, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Currency, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*Currency, error)
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Currency, error)
	Save(ctx context.Context, c *Currency) error
	SetDefault(ctx context.Context, tenantID, id uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LanguageRepository persists tenant languages with the same default
// semantics as currencies
type LanguageRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Language, error)
	FindByTag(ctx context.Context, tenantID uuid.UUID, tag string) (*Language, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*Language, error)
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Language, error)
	Save(ctx context.Context, l *Language) error
	SetDefault(ctx context.Context, tenantID, id uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ShippingRepository persists zones and their methods
type ShippingRepository interface {
	FindZoneByID(ctx context.Context, tenantID, id uuid.UUID) (*ShippingZone, error)
	FindAllZones(ctx context.Context, tenantID uuid.UUID) ([]*ShippingZone, error)
	SaveZone(ctx context.Context, z *ShippingZone) error
	DeleteZone(ctx context.Context, tenantID, id uuid.UUID) error

	FindMethodByID(ctx context.Context, tenantID, id uuid.UUID) (*ShippingMethod, error)
	FindMethodsByZone(ctx context.Context, tenantID, zoneID uuid.UUID) ([]*ShippingMethod, error)
	SaveMethod(ctx context.Context, m *ShippingMethod) error
	DeleteMethod(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentMethodRepository persists checkout payment method configs
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentMethodConfig, error)
	FindByProvider(ctx context.Context, tenantID uuid.UUID, provider PaymentProvider) (*PaymentMethodConfig, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*PaymentMethodConfig, error)
	Save(ctx context.Context, p *PaymentMethodConfig) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SecurityPolicyRepository persists the per-tenant auth policy
type SecurityPolicyRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*SecurityPolicy, error)
	Save(ctx context.Context, p *SecurityPolicy) error
}

// WebhookRepository persists webhook endpoints and notification rules
type WebhookRepository interface {
	FindEndpointByID(ctx context.Context, tenantID, id uuid.UUID) (*WebhookEndpoint, error)
	FindEndpointsByEvent(ctx context.Context, tenantID uuid.UUID, event WebhookEvent) ([]*WebhookEndpoint, error)
	FindAllEndpoints(ctx context.Context, tenantID uuid.UUID) ([]*WebhookEndpoint, error)
	SaveEndpoint(ctx context.Context, w *WebhookEndpoint) error
	DeleteEndpoint(ctx context.Context, tenantID, id uuid.UUID) error

	FindRules(ctx context.Context, tenantID uuid.UUID) ([]*NotificationRule, error)
	SaveRule(ctx context.Context, r *NotificationRule) error
	DeleteRule(ctx context.Context, tenantID, id uuid.UUID) error
}
