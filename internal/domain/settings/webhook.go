package settings

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// WebhookEvent names an event a webhook endpoint can subscribe to
type WebhookEvent string

const (
	EventOrderCreated    WebhookEvent = "order.created"
	EventOrderPaid       WebhookEvent = "order.paid"
	EventCustomerCreated WebhookEvent = "customer.created"
	EventCustomerUpdated WebhookEvent = "customer.updated"
	EventTicketCreated   WebhookEvent = "ticket.created"
	EventPointsAdjusted  WebhookEvent = "loyalty.points_adjusted"
)

var knownWebhookEvents = map[WebhookEvent]struct{}{
	EventOrderCreated:    {},
	EventOrderPaid:       {},
	EventCustomerCreated: {},
	EventCustomerUpdated: {},
	EventTicketCreated:   {},
	EventPointsAdjusted:  {},
}

// IsValidWebhookEvent reports whether the event name is known
func IsValidWebhookEvent(e WebhookEvent) bool {
	_, ok := knownWebhookEvents[e]
	return ok
}

// WebhookEndpoint is an outbound HTTP target for tenant events. The
// signing secret is generated once at creation and shown to the admin
// a single time.
type WebhookEndpoint struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	URL           string         `gorm:"type:varchar(500);not null"`
	Events        []WebhookEvent `gorm:"serializer:json"`
	Secret        string         `gorm:"type:varchar(64);not null"`
	Enabled       bool           `gorm:"not null;default:true"`
	FailureCount  int            `gorm:"not null;default:0"`
	LastFiredAt   *time.Time
	LastFailureAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (WebhookEndpoint) TableName() string {
	return "webhook_endpoints"
}

// NewWebhookEndpoint creates an endpoint subscribed to the given events
func NewWebhookEndpoint(tenantID uuid.UUID, rawURL string, events []WebhookEvent) (*WebhookEndpoint, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, shared.NewDomainError("INVALID_WEBHOOK", "Webhook URL must be a valid http or https URL")
	}
	if len(events) == 0 {
		return nil, shared.NewDomainError("INVALID_WEBHOOK", "Webhook must subscribe to at least one event")
	}
	for _, e := range events {
		if !IsValidWebhookEvent(e) {
			return nil, shared.NewDomainError("INVALID_WEBHOOK", "Unknown webhook event: "+string(e))
		}
	}

	now := time.Now()
	return &WebhookEndpoint{
		ID:        uuid.New(),
		TenantID:  tenantID,
		URL:       rawURL,
		Events:    events,
		Secret:    strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", ""),
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SubscribedTo reports whether the endpoint wants the event
func (w *WebhookEndpoint) SubscribedTo(event WebhookEvent) bool {
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}

// RecordSuccess resets the failure streak after a delivery succeeds
func (w *WebhookEndpoint) RecordSuccess(at time.Time) {
	w.FailureCount = 0
	w.LastFiredAt = &at
	w.UpdatedAt = at
}

// RecordFailure bumps the failure streak. Ten consecutive failures
// disable the endpoint.
func (w *WebhookEndpoint) RecordFailure(at time.Time) {
	w.FailureCount++
	w.LastFailureAt = &at
	w.UpdatedAt = at
	if w.FailureCount >= 10 {
		w.Enabled = false
	}
}

// NotificationRule routes an internal event to the admin notification
// channel so online back-office users see it in real time.
type NotificationRule struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Event     WebhookEvent `gorm:"type:varchar(50);not null"`
	Channel   string       `gorm:"type:varchar(50);not null;default:'admin'"`
	Enabled   bool         `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (NotificationRule) TableName() string {
	return "notification_rules"
}

// NewNotificationRule creates a rule for the given event
func NewNotificationRule(tenantID uuid.UUID, event WebhookEvent, channel string) (*NotificationRule, error) {
	if !IsValidWebhookEvent(event) {
		return nil, shared.NewDomainError("INVALID_WEBHOOK", "Unknown notification event: "+string(event))
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "admin"
	}

	now := time.Now()
	return &NotificationRule{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Event:     event,
		Channel:   channel,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
