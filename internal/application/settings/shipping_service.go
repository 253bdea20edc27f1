package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
)

// ShippingService manages shipping zones and their delivery methods
type ShippingService struct {
	shipping settings.ShippingRepository
	logger   *zap.Logger
}

// NewShippingService creates a new shipping service
func NewShippingService(shipping settings.ShippingRepository, logger *zap.Logger) *ShippingService {
	return &ShippingService{shipping: shipping, logger: logger}
}

// ListZones returns every shipping zone
func (s *ShippingService) ListZones(ctx context.Context, tenantID uuid.UUID) ([]*settings.ShippingZone, error) {
	return s.shipping.FindAllZones(ctx, tenantID)
}

// CreateZone adds a shipping zone
func (s *ShippingService) CreateZone(ctx context.Context, tenantID uuid.UUID, name string, countries []string) (*settings.ShippingZone, error) {
	zone, err := settings.NewShippingZone(tenantID, name, countries)
	if err != nil {
		return nil, err
	}
	if err := s.shipping.SaveZone(ctx, zone); err != nil {
		return nil, err
	}
	s.logger.Info("Shipping zone created", zap.String("name", zone.Name), zap.Int("countries", len(zone.Countries)))
	return zone, nil
}

// DeleteZone removes a zone and implicitly its methods
func (s *ShippingService) DeleteZone(ctx context.Context, tenantID, zoneID uuid.UUID) error {
	return s.shipping.DeleteZone(ctx, tenantID, zoneID)
}

// ListMethods returns the delivery methods of a zone
func (s *ShippingService) ListMethods(ctx context.Context, tenantID, zoneID uuid.UUID) ([]*settings.ShippingMethod, error) {
	return s.shipping.FindMethodsByZone(ctx, tenantID, zoneID)
}

// AddMethod adds a delivery method to a zone
func (s *ShippingService) AddMethod(ctx context.Context, tenantID, zoneID uuid.UUID, name string, fee decimal.Decimal, etaDays int) (*settings.ShippingMethod, error) {
	if _, err := s.shipping.FindZoneByID(ctx, tenantID, zoneID); err != nil {
		return nil, err
	}
	method, err := settings.NewShippingMethod(tenantID, zoneID, name, fee, etaDays)
	if err != nil {
		return nil, err
	}
	if err := s.shipping.SaveMethod(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// SetMethodEnabled toggles a delivery method
func (s *ShippingService) SetMethodEnabled(ctx context.Context, tenantID, methodID uuid.UUID, enabled bool) error {
	method, err := s.shipping.FindMethodByID(ctx, tenantID, methodID)
	if err != nil {
		return err
	}
	method.Enabled = enabled
	return s.shipping.SaveMethod(ctx, method)
}

// DeleteMethod removes a delivery method
func (s *ShippingService) DeleteMethod(ctx context.Context, tenantID, methodID uuid.UUID) error {
	return s.shipping.DeleteMethod(ctx, tenantID, methodID)
}
