package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormShippingRepository implements settings.ShippingRepository using GORM
type GormShippingRepository struct {
	db *gorm.DB
}

// NewGormShippingRepository creates a new GormShippingRepository
func NewGormShippingRepository(db *gorm.DB) *GormShippingRepository {
	return &GormShippingRepository{db: db}
}

// FindZoneByID finds a shipping zone by ID within a tenant
func (r *GormShippingRepository) FindZoneByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.ShippingZone, error) {
	var zone settings.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindAllZones returns every shipping zone of a tenant
func (r *GormShippingRepository) FindAllZones(ctx context.Context, tenantID uuid.UUID) ([]*settings.ShippingZone, error) {
	var zones []*settings.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// SaveZone persists the shipping zone
func (r *GormShippingRepository) SaveZone(ctx context.Context, z *settings.ShippingZone) error {
	return r.db.WithContext(ctx).Save(z).Error
}

// DeleteZone removes a zone and its delivery methods
func (r *GormShippingRepository) DeleteZone(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND zone_id = ?", tenantID, id).
			Delete(&settings.ShippingMethod{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&settings.ShippingZone{}).Error
	})
}

// FindMethodByID finds a delivery method by ID within a tenant
func (r *GormShippingRepository) FindMethodByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.ShippingMethod, error) {
	var method settings.ShippingMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindMethodsByZone returns the delivery methods of a zone
func (r *GormShippingRepository) FindMethodsByZone(ctx context.Context, tenantID, zoneID uuid.UUID) ([]*settings.ShippingMethod, error) {
	var methods []*settings.ShippingMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone_id = ?", tenantID, zoneID).
		Order("fee ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// SaveMethod persists the delivery method
func (r *GormShippingRepository) SaveMethod(ctx context.Context, m *settings.ShippingMethod) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteMethod removes a delivery method
func (r *GormShippingRepository) DeleteMethod(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.ShippingMethod{}).Error
}
