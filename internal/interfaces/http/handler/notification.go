package handler

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// NotificationSubscriber streams a tenant's admin notifications
type NotificationSubscriber interface {
	Subscribe(ctx context.Context, tenantID uuid.UUID) <-chan support.Notification
}

// NotificationHandler streams admin notifications over SSE so online
// console users see activity in real time
type NotificationHandler struct {
	BaseHandler
	subscriber NotificationSubscriber
	auth       *middleware.Auth
	heartbeat  time.Duration
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(subscriber NotificationSubscriber, auth *middleware.Auth) *NotificationHandler {
	return &NotificationHandler{
		subscriber: subscriber,
		auth:       auth,
		heartbeat:  30 * time.Second,
	}
}

// RegisterRoutes registers the notification stream route
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/notifications/stream", h.auth.AdminGuard(), h.Stream)
}

// Stream holds the connection open and pushes notifications as SSE
// events. Heartbeat comments keep proxies from closing idle streams.
func (h *NotificationHandler) Stream(c *gin.Context) {
	actx, ok := adminFrom(c)
	if !ok {
		h.Unauthorized(c, "Admin authentication required")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	notifications := h.subscriber.Subscribe(ctx, actx.Admin.TenantID)
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case notification, open := <-notifications:
			if !open {
				return false
			}
			data, err := json.Marshal(notification)
			if err != nil {
				return true
			}
			c.SSEvent("notification", string(data))
			return true
		case <-ticker.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
