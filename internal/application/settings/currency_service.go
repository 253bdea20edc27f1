package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CurrencyService manages the tenant's currency catalog
type CurrencyService struct {
	currencies settings.CurrencyRepository
	logger     *zap.Logger
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(currencies settings.CurrencyRepository, logger *zap.Logger) *CurrencyService {
	return &CurrencyService{currencies: currencies, logger: logger}
}

// List returns every configured currency
func (s *CurrencyService) List(ctx context.Context, tenantID uuid.UUID) ([]*settings.Currency, error) {
	return s.currencies.FindAll(ctx, tenantID)
}

// Add configures a new currency. The first currency of a tenant
// becomes the default automatically.
func (s *CurrencyService) Add(ctx context.Context, tenantID uuid.UUID, code, symbol string, rate decimal.Decimal) (*settings.Currency, error) {
	c, err := settings.NewCurrency(tenantID, code, symbol, rate)
	if err != nil {
		return nil, err
	}
	if existing, err := s.currencies.FindByCode(ctx, tenantID, c.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Currency is already configured")
	}

	all, err := s.currencies.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	c.IsDefault = len(all) == 0

	if err := s.currencies.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Currency added", zap.String("code", c.Code), zap.Bool("default", c.IsDefault))
	return c, nil
}

// UpdateRate changes a currency's exchange rate
func (s *CurrencyService) UpdateRate(ctx context.Context, tenantID, id uuid.UUID, rate decimal.Decimal) (*settings.Currency, error) {
	c, err := s.currencies.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateRate(rate); err != nil {
		return nil, err
	}
	if err := s.currencies.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetEnabled toggles a currency's availability
func (s *CurrencyService) SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) error {
	c, err := s.currencies.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if enabled {
		c.Enable()
	} else if err := c.Disable(); err != nil {
		return err
	}
	return s.currencies.Save(ctx, c)
}

// SetDefault makes the currency the tenant default. Clearing the old
// default and setting the new one happen in one transaction.
func (s *CurrencyService) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	c, err := s.currencies.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !c.Enabled {
		return shared.NewDomainError("INVALID_STATE", "A disabled currency cannot be the default")
	}
	if err := s.currencies.SetDefault(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Default currency changed", zap.String("code", c.Code))
	return nil
}

// Remove deletes a currency. The default cannot be removed.
func (s *CurrencyService) Remove(ctx context.Context, tenantID, id uuid.UUID) error {
	c, err := s.currencies.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if c.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default currency cannot be removed")
	}
	return s.currencies.Delete(ctx, tenantID, id)
}
