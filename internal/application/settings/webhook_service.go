package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
)

// Deliverer sends a signed webhook payload to an endpoint. Implemented
// by the HTTP adapter which signs the body with the endpoint secret.
type Deliverer interface {
	Deliver(ctx context.Context, endpoint *settings.WebhookEndpoint, event settings.WebhookEvent, payload interface{}) error
}

// WebhookService manages webhook endpoints and notification rules
type WebhookService struct {
	webhooks  settings.WebhookRepository
	deliverer Deliverer
	logger    *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(webhooks settings.WebhookRepository, deliverer Deliverer, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		webhooks:  webhooks,
		deliverer: deliverer,
		logger:    logger,
	}
}

// ListEndpoints returns every webhook endpoint
func (s *WebhookService) ListEndpoints(ctx context.Context, tenantID uuid.UUID) ([]*settings.WebhookEndpoint, error) {
	return s.webhooks.FindAllEndpoints(ctx, tenantID)
}

// CreateEndpoint registers an endpoint. The generated secret is only
// returned here; list responses must not include it.
func (s *WebhookService) CreateEndpoint(ctx context.Context, tenantID uuid.UUID, url string, events []settings.WebhookEvent) (*settings.WebhookEndpoint, error) {
	endpoint, err := settings.NewWebhookEndpoint(tenantID, url, events)
	if err != nil {
		return nil, err
	}
	if err := s.webhooks.SaveEndpoint(ctx, endpoint); err != nil {
		return nil, err
	}
	s.logger.Info("Webhook endpoint created", zap.String("url", endpoint.URL), zap.Int("events", len(endpoint.Events)))
	return endpoint, nil
}

// DeleteEndpoint removes an endpoint
func (s *WebhookService) DeleteEndpoint(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.webhooks.DeleteEndpoint(ctx, tenantID, id)
}

// TestFire delivers a synthetic signed payload to the endpoint so the
// admin can verify connectivity and signature handling.
func (s *WebhookService) TestFire(ctx context.Context, tenantID, id uuid.UUID) error {
	endpoint, err := s.webhooks.FindEndpointByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	event := endpoint.Events[0]
	payload := map[string]interface{}{
		"test":      true,
		"event":     event,
		"tenant_id": tenantID,
		"sent_at":   time.Now().UTC(),
	}

	now := time.Now()
	if err := s.deliverer.Deliver(ctx, endpoint, event, payload); err != nil {
		endpoint.RecordFailure(now)
		if saveErr := s.webhooks.SaveEndpoint(ctx, endpoint); saveErr != nil {
			s.logger.Warn("Failed to record webhook failure", zap.Error(saveErr))
		}
		return err
	}

	endpoint.RecordSuccess(now)
	if err := s.webhooks.SaveEndpoint(ctx, endpoint); err != nil {
		s.logger.Warn("Failed to record webhook success", zap.Error(err))
	}
	return nil
}

// Dispatch fans an event out to every subscribed endpoint, best-effort
func (s *WebhookService) Dispatch(ctx context.Context, tenantID uuid.UUID, event settings.WebhookEvent, payload interface{}) {
	endpoints, err := s.webhooks.FindEndpointsByEvent(ctx, tenantID, event)
	if err != nil {
		s.logger.Warn("Webhook endpoint lookup failed", zap.Error(err))
		return
	}

	now := time.Now()
	for _, endpoint := range endpoints {
		if !endpoint.Enabled {
			continue
		}
		if err := s.deliverer.Deliver(ctx, endpoint, event, payload); err != nil {
			s.logger.Warn("Webhook delivery failed",
				zap.String("url", endpoint.URL),
				zap.String("event", string(event)),
				zap.Error(err))
			endpoint.RecordFailure(now)
		} else {
			endpoint.RecordSuccess(now)
		}
		if err := s.webhooks.SaveEndpoint(ctx, endpoint); err != nil {
			s.logger.Warn("Failed to persist webhook delivery state", zap.Error(err))
		}
	}
}

// ListRules returns the tenant's notification rules
func (s *WebhookService) ListRules(ctx context.Context, tenantID uuid.UUID) ([]*settings.NotificationRule, error) {
	return s.webhooks.FindRules(ctx, tenantID)
}

// CreateRule adds a notification rule
func (s *WebhookService) CreateRule(ctx context.Context, tenantID uuid.UUID, event settings.WebhookEvent, channel string) (*settings.NotificationRule, error) {
	rule, err := settings.NewNotificationRule(tenantID, event, channel)
	if err != nil {
		return nil, err
	}
	if err := s.webhooks.SaveRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule removes a notification rule
func (s *WebhookService) DeleteRule(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.webhooks.DeleteRule(ctx, tenantID, id)
}
