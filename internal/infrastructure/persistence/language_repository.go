package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormLanguageRepository implements settings.LanguageRepository using GORM
type GormLanguageRepository struct {
	db *gorm.DB
}

// NewGormLanguageRepository creates a new GormLanguageRepository
func NewGormLanguageRepository(db *gorm.DB) *GormLanguageRepository {
	return &GormLanguageRepository{db: db}
}

// FindByID finds a language by ID within a tenant
func (r *GormLanguageRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.Language, error) {
	var l settings.Language
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindByTag finds a language by BCP 47 tag within a tenant
func (r *GormLanguageRepository) FindByTag(ctx context.Context, tenantID uuid.UUID, tag string) (*settings.Language, error) {
	var l settings.Language
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND tag = ?", tenantID, tag).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindAll returns every language of a tenant
func (r *GormLanguageRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*settings.Language, error) {
	var languages []*settings.Language
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("tag ASC").
		Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

// FindDefault returns the tenant's default language
func (r *GormLanguageRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*settings.Language, error) {
	var l settings.Language
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Save persists the language
func (r *GormLanguageRepository) Save(ctx context.Context, l *settings.Language) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// SetDefault moves the default flag to the given language atomically
func (r *GormLanguageRepository) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&settings.Language{}).
			Where("tenant_id = ? AND is_default = ?", tenantID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&settings.Language{}).
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

// Delete removes a language
func (r *GormLanguageRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.Language{}).Error
}
