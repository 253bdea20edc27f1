package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormCurrencyRepository implements settings.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by ID within a tenant
func (r *GormCurrencyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.Currency, error) {
	var c settings.Currency
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCode finds a currency by ISO code within a tenant
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*settings.Currency, error) {
	var c settings.Currency
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll returns every currency of a tenant
func (r *GormCurrencyRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*settings.Currency, error) {
	var currencies []*settings.Currency
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

// FindDefault returns the tenant's default currency
func (r *GormCurrencyRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*settings.Currency, error) {
	var c settings.Currency
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists the currency
func (r *GormCurrencyRepository) Save(ctx context.Context, c *settings.Currency) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// SetDefault moves the default flag to the given currency in one
// transaction so exactly one row per tenant carries it.
func (r *GormCurrencyRepository) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&settings.Currency{}).
			Where("tenant_id = ? AND is_default = ?", tenantID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&settings.Currency{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Delete removes a currency
func (r *GormCurrencyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.Currency{}).Error
}
