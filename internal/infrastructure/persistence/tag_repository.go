package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormTagRepository implements customer.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by ID within a tenant
func (r *GormTagRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Tag, error) {
	var tag customer.Tag
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindByName finds a tag by name within a tenant
func (r *GormTagRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*customer.Tag, error) {
	var tag customer.Tag
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindAll returns every tag of a tenant
func (r *GormTagRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]customer.Tag, error) {
	var tags []customer.Tag
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Save persists the tag
func (r *GormTagRepository) Save(ctx context.Context, tag *customer.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes a tag and its assignments
func (r *GormTagRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND tag_id = ?", tenantID, id).
			Delete(&customer.TagAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&customer.Tag{}).Error
	})
}

// FindAssignments returns the tag assignments of a customer
func (r *GormTagRepository) FindAssignments(ctx context.Context, tenantID, customerID uuid.UUID) ([]customer.TagAssignment, error) {
	var assignments []customer.TagAssignment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// AssignmentExists reports whether the customer already carries the tag
func (r *GormTagRepository) AssignmentExists(ctx context.Context, tenantID, customerID, tagID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.TagAssignment{}).
		Where("tenant_id = ? AND customer_id = ? AND tag_id = ?", tenantID, customerID, tagID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveAssignment persists a tag assignment
func (r *GormTagRepository) SaveAssignment(ctx context.Context, assignment *customer.TagAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// DeleteAssignment removes a tag from a customer
func (r *GormTagRepository) DeleteAssignment(ctx context.Context, tenantID, customerID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ? AND tag_id = ?", tenantID, customerID, tagID).
		Delete(&customer.TagAssignment{}).Error
}
