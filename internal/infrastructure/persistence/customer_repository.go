package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Customer, error) {
	var c customer.Customer
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

// FindByEmail finds a customer by email within a tenant
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*customer.Customer, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var c customer.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds all customers of a tenant matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	var customers []customer.Customer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&customer.Customer{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Count counts the customers of a tenant matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&customer.Customer{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// SaveWithLedger persists the customer and the ledger entry atomically
func (r *GormCustomerRepository) SaveWithLedger(ctx context.Context, c *customer.Customer, tx *customer.LoyaltyTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Save(c).Error; err != nil {
			return err
		}
		return dbtx.Create(tx).Error
	})
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR phone ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "loyalty_tier":
			query = query.Where("loyalty_tier = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "min_points":
			query = query.Where("loyalty_points >= ?", value)
		case "min_spent":
			query = query.Where("total_spent >= ?", value)
		}
	}

	return query
}
