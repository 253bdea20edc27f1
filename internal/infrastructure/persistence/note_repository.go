package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormNoteRepository implements customer.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByCustomer returns notes for a customer, newest first
func (r *GormNoteRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.Note, error) {
	var notes []customer.Note
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// CountByCustomer counts the notes of a customer
func (r *GormNoteRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.Note{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the note
func (r *GormNoteRepository) Save(ctx context.Context, note *customer.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}
