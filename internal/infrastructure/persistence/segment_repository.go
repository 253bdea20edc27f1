package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormSegmentRepository implements customer.SegmentRepository using GORM
type GormSegmentRepository struct {
	db *gorm.DB
}

// NewGormSegmentRepository creates a new GormSegmentRepository
func NewGormSegmentRepository(db *gorm.DB) *GormSegmentRepository {
	return &GormSegmentRepository{db: db}
}

// FindByID finds a segment by ID within a tenant
func (r *GormSegmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Segment, error) {
	var segment customer.Segment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&segment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &segment, nil
}

// FindAll returns every segment of a tenant
func (r *GormSegmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]customer.Segment, error) {
	var segments []customer.Segment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

// Save persists the segment
func (r *GormSegmentRepository) Save(ctx context.Context, segment *customer.Segment) error {
	return r.db.WithContext(ctx).Save(segment).Error
}

// Delete removes a segment and its memberships
func (r *GormSegmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND segment_id = ?", tenantID, id).
			Delete(&customer.SegmentAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&customer.Segment{}).Error
	})
}

// FindMemberships returns the segment memberships of a customer
func (r *GormSegmentRepository) FindMemberships(ctx context.Context, tenantID, customerID uuid.UUID) ([]customer.SegmentAssignment, error) {
	var memberships []customer.SegmentAssignment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ReplaceMemberships swaps the customer's memberships in one transaction
func (r *GormSegmentRepository) ReplaceMemberships(ctx context.Context, tenantID, customerID uuid.UUID, assignments []customer.SegmentAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
			Delete(&customer.SegmentAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}
