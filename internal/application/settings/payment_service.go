package settings

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// PaymentConfigService manages the checkout payment method configs
type PaymentConfigService struct {
	methods settings.PaymentMethodRepository
	logger  *zap.Logger
}

// NewPaymentConfigService creates a new payment config service
func NewPaymentConfigService(methods settings.PaymentMethodRepository, logger *zap.Logger) *PaymentConfigService {
	return &PaymentConfigService{methods: methods, logger: logger}
}

// List returns every configured payment method
func (s *PaymentConfigService) List(ctx context.Context, tenantID uuid.UUID) ([]*settings.PaymentMethodConfig, error) {
	return s.methods.FindAll(ctx, tenantID)
}

// Configure creates the config for a provider. One config per provider
// per tenant.
func (s *PaymentConfigService) Configure(ctx context.Context, tenantID uuid.UUID, provider settings.PaymentProvider, displayName, credentialRef string) (*settings.PaymentMethodConfig, error) {
	if existing, err := s.methods.FindByProvider(ctx, tenantID, provider); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This payment provider is already configured")
	}
	cfg, err := settings.NewPaymentMethodConfig(tenantID, provider, displayName, credentialRef)
	if err != nil {
		return nil, err
	}
	if err := s.methods.Save(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("Payment method configured", zap.String("provider", string(provider)))
	return cfg, nil
}

// EnabledProvider returns the tenant's config for a provider when it
// exists and is switched on at checkout
func (s *PaymentConfigService) EnabledProvider(ctx context.Context, tenantID uuid.UUID, provider settings.PaymentProvider) (*settings.PaymentMethodConfig, error) {
	cfg, err := s.methods.FindByProvider(ctx, tenantID, provider)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, shared.NewDomainError("PAYMENT_METHOD_DISABLED", "This payment method is not enabled")
	}
	return cfg, nil
}

// SetEnabled toggles a payment method at checkout
func (s *PaymentConfigService) SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) error {
	cfg, err := s.methods.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	if err := s.methods.Save(ctx, cfg); err != nil {
		return err
	}
	s.logger.Info("Payment method toggled",
		zap.String("provider", string(cfg.Provider)),
		zap.Bool("enabled", enabled))
	return nil
}

// Remove deletes a payment method config
func (s *PaymentConfigService) Remove(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.methods.Delete(ctx, tenantID, id)
}
