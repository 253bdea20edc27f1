package support

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailSender delivers transactional email through the provider adapter
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notification is a real-time event pushed to online back-office users
type Notification struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Kind       string    `json:"kind"`
	CustomerID uuid.UUID `json:"customer_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier publishes admin notifications. Delivery is best-effort; a
// publish failure never fails the action that produced it.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}

// TagCache caches a customer's tag memberships. Get returns
// (nil, false, nil) on a miss.
type TagCache interface {
	Get(ctx context.Context, tenantID, customerID uuid.UUID) ([]TagView, bool, error)
	Set(ctx context.Context, tenantID, customerID uuid.UUID, tags []TagView) error
	Invalidate(ctx context.Context, tenantID, customerID uuid.UUID) error
}
