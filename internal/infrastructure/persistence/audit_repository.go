package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormAuditRepository implements customer.AuditRepository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// FindByCustomer returns audit entries for a customer, newest first
func (r *GormAuditRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.AuditEntry, error) {
	var entries []customer.AuditEntry
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	if action, ok := filter.Filters["action"]; ok {
		query = query.Where("action = ?", action)
	}
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists the audit entry
func (r *GormAuditRepository) Save(ctx context.Context, entry *customer.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GormTicketRepository implements customer.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByCustomer returns tickets for a customer, newest first
func (r *GormTicketRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.Ticket, error) {
	var tickets []customer.Ticket
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Save persists the ticket
func (r *GormTicketRepository) Save(ctx context.Context, ticket *customer.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}
