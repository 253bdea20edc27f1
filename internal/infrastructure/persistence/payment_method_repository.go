package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormPaymentMethodRepository implements settings.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method config by ID within a tenant
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.PaymentMethodConfig, error) {
	var cfg settings.PaymentMethodConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// FindByProvider finds the config for a provider within a tenant
func (r *GormPaymentMethodRepository) FindByProvider(ctx context.Context, tenantID uuid.UUID, provider settings.PaymentProvider) (*settings.PaymentMethodConfig, error) {
	var cfg settings.PaymentMethodConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND provider = ?", tenantID, provider).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// FindAll returns every payment method config of a tenant
func (r *GormPaymentMethodRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*settings.PaymentMethodConfig, error) {
	var configs []*settings.PaymentMethodConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("provider ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Save persists the payment method config
func (r *GormPaymentMethodRepository) Save(ctx context.Context, p *settings.PaymentMethodConfig) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a payment method config
func (r *GormPaymentMethodRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.PaymentMethodConfig{}).Error
}

// GormSecurityPolicyRepository implements settings.SecurityPolicyRepository using GORM
type GormSecurityPolicyRepository struct {
	db *gorm.DB
}

// NewGormSecurityPolicyRepository creates a new GormSecurityPolicyRepository
func NewGormSecurityPolicyRepository(db *gorm.DB) *GormSecurityPolicyRepository {
	return &GormSecurityPolicyRepository{db: db}
}

// FindByTenant returns the tenant's security policy
func (r *GormSecurityPolicyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.SecurityPolicy, error) {
	var policy settings.SecurityPolicy
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

// Save persists the security policy
func (r *GormSecurityPolicyRepository) Save(ctx context.Context, p *settings.SecurityPolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}
