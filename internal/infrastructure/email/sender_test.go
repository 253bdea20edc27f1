package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

func TestHTTPSender_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req.To)
		assert.Equal(t, "Welcome back", req.Subject)
		assert.Equal(t, "noreply@shop.example", req.FromEmail)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewHTTPSender(config.EmailConfig{
		BaseURL:   server.URL,
		APIKey:    "key",
		FromName:  "Shop",
		FromEmail: "noreply@shop.example",
	}, zap.NewNop())

	err := sender.Send(context.Background(), "jane@example.com", "Welcome back", "Hi Jane!")
	assert.NoError(t, err)
}

func TestHTTPSender_SendRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewHTTPSender(config.EmailConfig{BaseURL: server.URL}, zap.NewNop())

	err := sender.Send(context.Background(), "jane@example.com", "Subject", "Body")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPSender_SendExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := NewHTTPSender(config.EmailConfig{BaseURL: server.URL}, zap.NewNop())

	err := sender.Send(context.Background(), "jane@example.com", "Subject", "Body")
	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), atomic.LoadInt32(&calls))
}
