package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	settingsapp "github.com/marketplace/backend/internal/application/settings"
	"github.com/marketplace/backend/internal/application/support"
	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/payment"
)

type memoryPaymentMethodRepo struct {
	configs map[uuid.UUID]*settings.PaymentMethodConfig
}

func newMemoryPaymentMethodRepo() *memoryPaymentMethodRepo {
	return &memoryPaymentMethodRepo{configs: make(map[uuid.UUID]*settings.PaymentMethodConfig)}
}

func (r *memoryPaymentMethodRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*settings.PaymentMethodConfig, error) {
	cfg, ok := r.configs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cfg, nil
}

func (r *memoryPaymentMethodRepo) FindByProvider(_ context.Context, _ uuid.UUID, provider settings.PaymentProvider) (*settings.PaymentMethodConfig, error) {
	for _, cfg := range r.configs {
		if cfg.Provider == provider {
			return cfg, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryPaymentMethodRepo) FindAll(_ context.Context, _ uuid.UUID) ([]*settings.PaymentMethodConfig, error) {
	out := make([]*settings.PaymentMethodConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		out = append(out, cfg)
	}
	return out, nil
}

func (r *memoryPaymentMethodRepo) Save(_ context.Context, cfg *settings.PaymentMethodConfig) error {
	r.configs[cfg.ID] = cfg
	return nil
}

func (r *memoryPaymentMethodRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.configs, id)
	return nil
}

type memoryCustomerRepo struct {
	customers map[uuid.UUID]*customer.Customer
	ledger    []*customer.LoyaltyTransaction
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{customers: make(map[uuid.UUID]*customer.Customer)}
}

func (r *memoryCustomerRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memoryCustomerRepo) FindByEmail(_ context.Context, _ uuid.UUID, _ string) (*customer.Customer, error) {
	return nil, shared.ErrNotFound
}

func (r *memoryCustomerRepo) FindAll(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]customer.Customer, error) {
	return nil, nil
}

func (r *memoryCustomerRepo) Count(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *memoryCustomerRepo) Save(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memoryCustomerRepo) SaveWithLedger(_ context.Context, c *customer.Customer, tx *customer.LoyaltyTransaction) error {
	r.customers[c.ID] = c
	r.ledger = append(r.ledger, tx)
	return nil
}

type recordingFavorites struct {
	categories []string
}

func (f *recordingFavorites) Record(_ context.Context, _, _ uuid.UUID, category string, _ []string) error {
	f.categories = append(f.categories, category)
	return nil
}

type recordingDispatcher struct {
	events []settings.WebhookEvent
}

func (d *recordingDispatcher) Dispatch(_ context.Context, _ uuid.UUID, event settings.WebhookEvent, _ interface{}) {
	d.events = append(d.events, event)
}

func newCallbackFixture(t *testing.T) (*gin.Engine, *memoryCustomerRepo, *recordingFavorites, *recordingDispatcher, *customer.Customer) {
	t.Helper()

	repo := newMemoryCustomerRepo()
	favorites := &recordingFavorites{}
	dispatcher := &recordingDispatcher{}

	c, err := customer.NewCustomer(uuid.New(), "buyer@shop.test", "Ada", "Osei")
	require.NoError(t, err)
	repo.customers[c.ID] = c

	orders := support.NewOrderService(repo, favorites, dispatcher, zap.NewNop())
	paymentCfg := config.PaymentConfig{
		CardWebhookSecret:   "card-secret",
		MobileWebhookSecret: "momo-secret",
	}
	verifier := payment.NewCallbackVerifier(paymentCfg)
	methodRepo := newMemoryPaymentMethodRepo()
	methods := settingsapp.NewPaymentConfigService(methodRepo, zap.NewNop())
	h := NewPaymentHandler(verifier, payment.NewGateway(paymentCfg), methods, orders, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router, repo, favorites, dispatcher, c
}

func newInitiateFixture(t *testing.T, gatewayURL string, enabled bool) (*gin.Engine, uuid.UUID) {
	t.Helper()

	repo := newMemoryCustomerRepo()
	orders := support.NewOrderService(repo, &recordingFavorites{}, &recordingDispatcher{}, zap.NewNop())
	paymentCfg := config.PaymentConfig{
		CardBaseURL:         gatewayURL,
		CardWebhookSecret:   "card-secret",
		MobileWebhookSecret: "momo-secret",
	}

	tenantID := uuid.New()
	methodRepo := newMemoryPaymentMethodRepo()
	cfg, err := settings.NewPaymentMethodConfig(tenantID, settings.ProviderCard, "Card", "vault:card")
	require.NoError(t, err)
	if enabled {
		cfg.Enable()
	}
	methodRepo.configs[cfg.ID] = cfg

	methods := settingsapp.NewPaymentConfigService(methodRepo, zap.NewNop())
	verifier := payment.NewCallbackVerifier(paymentCfg)
	h := NewPaymentHandler(verifier, payment.NewGateway(paymentCfg), methods, orders, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router, tenantID
}

func TestPaymentInitiate(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payment.Sign([]byte("card-secret"), body), r.Header.Get(payment.RequestSignatureHeader))

		var req payment.InitiationRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "ord-90", req.OrderID)
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(75)))

		json.NewEncoder(w).Encode(payment.InitiationResult{
			PaymentID:   "pay-123",
			RedirectURL: "https://gateway.test/checkout/pay-123",
		})
	}))
	defer gateway.Close()

	router, tenantID := newInitiateFixture(t, gateway.URL, true)

	payload, _ := json.Marshal(map[string]string{
		"provider":    "CARD",
		"order_id":    "ord-90",
		"customer_id": uuid.NewString(),
		"amount":      "75",
		"currency":    "USD",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/initiate", bytes.NewReader(payload))
	req.Header.Set(TenantIDHeader, tenantID.String())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pay-123")
	assert.Contains(t, w.Body.String(), "https://gateway.test/checkout/pay-123")
}

func TestPaymentInitiate_DisabledMethod(t *testing.T) {
	router, tenantID := newInitiateFixture(t, "http://gateway.invalid", false)

	payload, _ := json.Marshal(map[string]string{
		"provider":    "CARD",
		"order_id":    "ord-91",
		"customer_id": uuid.NewString(),
		"amount":      "10",
		"currency":    "USD",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/initiate", bytes.NewReader(payload))
	req.Header.Set(TenantIDHeader, tenantID.String())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENT_METHOD_DISABLED")
}

func TestPaymentInitiate_UnconfiguredProvider(t *testing.T) {
	router, tenantID := newInitiateFixture(t, "http://gateway.invalid", true)

	payload, _ := json.Marshal(map[string]string{
		"provider":    "MOBILE_MONEY",
		"order_id":    "ord-92",
		"customer_id": uuid.NewString(),
		"amount":      "10",
		"currency":    "GHS",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/initiate", bytes.NewReader(payload))
	req.Header.Set(TenantIDHeader, tenantID.String())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func signedCallback(t *testing.T, secret string, event payment.CallbackEvent) (*bytes.Reader, string) {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return bytes.NewReader(body), payment.Sign([]byte(secret), body)
}

func TestPaymentCallback_Paid(t *testing.T) {
	router, repo, favorites, dispatcher, c := newCallbackFixture(t)

	body, signature := signedCallback(t, "card-secret", payment.CallbackEvent{
		OrderID:    "ord-77",
		CustomerID: c.ID,
		TenantID:   c.TenantID,
		Amount:     decimal.NewFromInt(150),
		Currency:   "USD",
		Status:     "paid",
		OccurredAt: time.Now(),
		Items:      []payment.CallbackItem{{Category: "footwear", Tags: []string{"running"}}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callbacks/CARD", body)
	req.Header.Set(SignatureHeader, signature)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	saved := repo.customers[c.ID]
	assert.Equal(t, 1, saved.OrderCount)
	assert.True(t, saved.TotalSpent.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(150), saved.LoyaltyPoints)
	require.Len(t, repo.ledger, 1)
	assert.Equal(t, int64(150), repo.ledger[0].BalanceAfter)

	assert.Equal(t, []string{"footwear"}, favorites.categories)
	assert.Equal(t, []settings.WebhookEvent{settings.EventOrderPaid}, dispatcher.events)
}

func TestPaymentCallback_BadSignature(t *testing.T) {
	router, repo, _, dispatcher, c := newCallbackFixture(t)

	body, _ := signedCallback(t, "card-secret", payment.CallbackEvent{
		OrderID:    "ord-78",
		CustomerID: c.ID,
		TenantID:   c.TenantID,
		Amount:     decimal.NewFromInt(20),
		Status:     "paid",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callbacks/CARD", body)
	req.Header.Set(SignatureHeader, "deadbeef")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, repo.customers[c.ID].OrderCount)
	assert.Empty(t, dispatcher.events)
}

func TestPaymentCallback_UnknownProvider(t *testing.T) {
	router, _, _, _, c := newCallbackFixture(t)

	body, signature := signedCallback(t, "card-secret", payment.CallbackEvent{
		OrderID:    "ord-79",
		CustomerID: c.ID,
		TenantID:   c.TenantID,
		Status:     "paid",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callbacks/PAYPAL", body)
	req.Header.Set(SignatureHeader, signature)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCallback_PendingIsAcknowledged(t *testing.T) {
	router, repo, _, dispatcher, c := newCallbackFixture(t)

	body, signature := signedCallback(t, "momo-secret", payment.CallbackEvent{
		OrderID:    "ord-80",
		CustomerID: c.ID,
		TenantID:   c.TenantID,
		Amount:     decimal.NewFromInt(40),
		Status:     "pending",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callbacks/MOBILE_MONEY", body)
	req.Header.Set(SignatureHeader, signature)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, repo.customers[c.ID].OrderCount)
	assert.Empty(t, dispatcher.events)
}
