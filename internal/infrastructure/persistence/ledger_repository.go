package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormLedgerRepository implements customer.LedgerRepository using GORM.
// Writes go through GormCustomerRepository.SaveWithLedger.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByCustomer returns ledger entries for a customer, newest first
func (r *GormLedgerRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.LoyaltyTransaction, error) {
	var entries []customer.LoyaltyTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindSince returns ledger entries created at or after the given time
func (r *GormLedgerRepository) FindSince(ctx context.Context, tenantID, customerID uuid.UUID, since time.Time) ([]customer.LoyaltyTransaction, error) {
	var entries []customer.LoyaltyTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ? AND created_at >= ?", tenantID, customerID, since).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
