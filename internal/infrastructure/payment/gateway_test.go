package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

func TestGatewayInitiate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, initiatePath, r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, Sign([]byte("card-secret"), body), r.Header.Get(RequestSignatureHeader))

		var req InitiationRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "ord-1", req.OrderID)
		assert.Equal(t, "USD", req.Currency)

		json.NewEncoder(w).Encode(InitiationResult{
			PaymentID:   "pay-9",
			RedirectURL: "https://gateway.test/pay-9",
			ExpiresAt:   time.Now().Add(15 * time.Minute),
		})
	}))
	defer server.Close()

	gateway := NewGateway(config.PaymentConfig{
		CardBaseURL:       server.URL,
		CardWebhookSecret: "card-secret",
	})

	result, err := gateway.Initiate(context.Background(), settings.ProviderCard, InitiationRequest{
		TenantID:   uuid.New(),
		CustomerID: uuid.New(),
		OrderID:    "ord-1",
		Amount:     decimal.NewFromInt(50),
		Currency:   "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-9", result.PaymentID)
	assert.Equal(t, "https://gateway.test/pay-9", result.RedirectURL)
}

func TestGatewayInitiate_UnconfiguredProvider(t *testing.T) {
	gateway := NewGateway(config.PaymentConfig{CardBaseURL: "http://gateway.invalid"})

	_, err := gateway.Initiate(context.Background(), settings.ProviderMobileMoney, InitiationRequest{OrderID: "ord-2"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestGatewayInitiate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "declined", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	gateway := NewGateway(config.PaymentConfig{
		CardBaseURL:       server.URL,
		CardWebhookSecret: "card-secret",
	})

	_, err := gateway.Initiate(context.Background(), settings.ProviderCard, InitiationRequest{OrderID: "ord-3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
