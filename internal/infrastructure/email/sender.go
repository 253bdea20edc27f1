// Package email provides the HTTP adapter for the transactional email provider.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

const (
	sendPath    = "/v1/messages"
	maxAttempts = 3
	retryDelay  = 500 * time.Millisecond
)

// HTTPSender delivers transactional email through the provider's REST
// API. It implements the support application's EmailSender port.
type HTTPSender struct {
	baseURL    string
	apiKey     string
	fromName   string
	fromEmail  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSender creates a new HTTPSender
func NewHTTPSender(cfg config.EmailConfig, logger *zap.Logger) *HTTPSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type sendRequest struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Send delivers the message, retrying transient failures
func (s *HTTPSender) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(sendRequest{
		FromName:  s.fromName,
		FromEmail: s.fromEmail,
		To:        to,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("email: failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryDelay):
			}
		}

		lastErr = s.deliver(ctx, payload)
		if lastErr == nil {
			return nil
		}
		s.logger.Warn("Email delivery attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
	}
	return fmt.Errorf("email: delivery failed after %d attempts: %w", maxAttempts, lastErr)
}

func (s *HTTPSender) deliver(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
