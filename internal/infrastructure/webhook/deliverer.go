// Package webhook delivers signed event payloads to tenant endpoints.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/settings"
)

const (
	signatureHeader = "X-Webhook-Signature"
	eventHeader     = "X-Webhook-Event"
	deliveryHeader  = "X-Webhook-Delivery"
)

// HTTPDeliverer posts signed JSON payloads to webhook endpoints. It
// implements the settings application's Deliverer port.
type HTTPDeliverer struct {
	httpClient *http.Client
}

// NewHTTPDeliverer creates a new HTTPDeliverer
func NewHTTPDeliverer(timeout time.Duration) *HTTPDeliverer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDeliverer{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type envelope struct {
	Event  settings.WebhookEvent `json:"event"`
	SentAt time.Time             `json:"sent_at"`
	Data   interface{}           `json:"data"`
}

// Deliver signs the payload with the endpoint secret and posts it.
// Receivers recompute the HMAC over the raw body to authenticate us.
func (d *HTTPDeliverer) Deliver(ctx context.Context, endpoint *settings.WebhookEndpoint, event settings.WebhookEvent, payload interface{}) error {
	body, err := json.Marshal(envelope{
		Event:  event,
		SentAt: time.Now().UTC(),
		Data:   payload,
	})
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signatureHeader, sign([]byte(endpoint.Secret), body))
	req.Header.Set(eventHeader, string(event))
	req.Header.Set(deliveryHeader, uuid.New().String())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
