package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormAdminUserRepository implements identity.AdminUserRepository using GORM
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewGormAdminUserRepository creates a new GormAdminUserRepository
func NewGormAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// FindByID finds an admin user by ID within a tenant
func (r *GormAdminUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.AdminUser, error) {
	var admin identity.AdminUser
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindByUserID finds an admin user by its account user ID within a tenant
func (r *GormAdminUserRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*identity.AdminUser, error) {
	var admin identity.AdminUser
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin user by email within a tenant
func (r *GormAdminUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.AdminUser, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var admin identity.AdminUser
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindAll finds the admin users of a tenant matching the filter
func (r *GormAdminUserRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.AdminUser, error) {
	var admins []identity.AdminUser
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&identity.AdminUser{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Count counts the admin users of a tenant matching the filter
func (r *GormAdminUserRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(
		r.db.WithContext(ctx).Model(&identity.AdminUser{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the admin user
func (r *GormAdminUserRepository) Save(ctx context.Context, admin *identity.AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// Delete removes an admin user
func (r *GormAdminUserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&identity.AdminUser{}).Error
}

func (r *GormAdminUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, AdminUserSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormAdminUserRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	return query
}
