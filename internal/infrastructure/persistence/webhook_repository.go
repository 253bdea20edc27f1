package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormWebhookRepository implements settings.WebhookRepository using GORM
type GormWebhookRepository struct {
	db *gorm.DB
}

// NewGormWebhookRepository creates a new GormWebhookRepository
func NewGormWebhookRepository(db *gorm.DB) *GormWebhookRepository {
	return &GormWebhookRepository{db: db}
}

// FindEndpointByID finds a webhook endpoint by ID within a tenant
func (r *GormWebhookRepository) FindEndpointByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.WebhookEndpoint, error) {
	var endpoint settings.WebhookEndpoint
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &endpoint, nil
}

// FindEndpointsByEvent returns the endpoints subscribed to an event.
// Event lists are stored as JSON, so subscription matching happens here
// rather than in SQL.
func (r *GormWebhookRepository) FindEndpointsByEvent(ctx context.Context, tenantID uuid.UUID, event settings.WebhookEvent) ([]*settings.WebhookEndpoint, error) {
	endpoints, err := r.FindAllEndpoints(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	subscribed := make([]*settings.WebhookEndpoint, 0, len(endpoints))
	for _, endpoint := range endpoints {
		if endpoint.SubscribedTo(event) {
			subscribed = append(subscribed, endpoint)
		}
	}
	return subscribed, nil
}

// FindAllEndpoints returns every webhook endpoint of a tenant
func (r *GormWebhookRepository) FindAllEndpoints(ctx context.Context, tenantID uuid.UUID) ([]*settings.WebhookEndpoint, error) {
	var endpoints []*settings.WebhookEndpoint
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// SaveEndpoint persists the webhook endpoint
func (r *GormWebhookRepository) SaveEndpoint(ctx context.Context, w *settings.WebhookEndpoint) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// DeleteEndpoint removes a webhook endpoint
func (r *GormWebhookRepository) DeleteEndpoint(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.WebhookEndpoint{}).Error
}

// FindRules returns every notification rule of a tenant
func (r *GormWebhookRepository) FindRules(ctx context.Context, tenantID uuid.UUID) ([]*settings.NotificationRule, error) {
	var rules []*settings.NotificationRule
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("event ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// SaveRule persists the notification rule
func (r *GormWebhookRepository) SaveRule(ctx context.Context, rule *settings.NotificationRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// DeleteRule removes a notification rule
func (r *GormWebhookRepository) DeleteRule(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&settings.NotificationRule{}).Error
}
