package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

const initiatePath = "/v1/payments"

// RequestSignatureHeader carries our HMAC over outbound request bodies
const RequestSignatureHeader = "X-Request-Signature"

// InitiationRequest describes the payment to open with the gateway
type InitiationRequest struct {
	TenantID   uuid.UUID       `json:"tenant_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderID    string          `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	ReturnURL  string          `json:"return_url,omitempty"`
}

// InitiationResult is the gateway's handle for a pending payment. The
// shopper completes it at the redirect URL; settlement arrives later
// on the callback route.
type InitiationResult struct {
	PaymentID   string    `json:"payment_id"`
	RedirectURL string    `json:"redirect_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type gatewayEndpoint struct {
	baseURL string
	secret  []byte
}

// Gateway opens payments with the upstream card and mobile-money
// providers. Request bodies are signed with the provider's shared
// secret, the same one that authenticates its callbacks.
type Gateway struct {
	endpoints  map[settings.PaymentProvider]gatewayEndpoint
	httpClient *http.Client
}

// NewGateway creates a new Gateway
func NewGateway(cfg config.PaymentConfig) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		endpoints: map[settings.PaymentProvider]gatewayEndpoint{
			settings.ProviderCard:        {baseURL: cfg.CardBaseURL, secret: []byte(cfg.CardWebhookSecret)},
			settings.ProviderMobileMoney: {baseURL: cfg.MobileBaseURL, secret: []byte(cfg.MobileWebhookSecret)},
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Initiate opens a payment with the provider's gateway
func (g *Gateway) Initiate(ctx context.Context, provider settings.PaymentProvider, req InitiationRequest) (*InitiationResult, error) {
	ep, ok := g.endpoints[provider]
	if !ok || ep.baseURL == "" {
		return nil, ErrUnknownProvider
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.baseURL+initiatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payment gateway: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestSignatureHeader, Sign(ep.secret, body))

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment gateway: unexpected status %d: %s", resp.StatusCode, respBody)
	}

	var result InitiationResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("payment gateway: failed to decode response: %w", err)
	}
	return &result, nil
}
