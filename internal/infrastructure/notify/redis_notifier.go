// Package notify fans admin notifications out over Redis pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marketplace/backend/internal/application/support"
)

const channelPrefix = "notifications:admin:"

// RedisNotifier publishes admin notifications to the tenant channel.
// It implements the support application's Notifier port.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a new RedisNotifier
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func channelFor(tenantID uuid.UUID) string {
	return channelPrefix + tenantID.String()
}

// Publish sends the notification to every live console subscriber
func (n *RedisNotifier) Publish(ctx context.Context, notification support.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("notify: failed to marshal notification: %w", err)
	}
	return n.client.Publish(ctx, channelFor(notification.TenantID), data).Err()
}

// Subscriber streams a tenant's notifications to connected consoles
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe returns a channel of notifications for the tenant. The
// channel closes when the context is cancelled.
func (s *Subscriber) Subscribe(ctx context.Context, tenantID uuid.UUID) <-chan support.Notification {
	pubsub := s.client.Subscribe(ctx, channelFor(tenantID))
	out := make(chan support.Notification)

	go func() {
		defer close(out)
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var notification support.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
					continue
				}
				select {
				case out <- notification:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
