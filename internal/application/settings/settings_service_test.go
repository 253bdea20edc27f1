package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockCurrencyRepository is a mock implementation of settings.CurrencyRepository
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.Currency, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*settings.Currency, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*settings.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*settings.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, c *settings.Currency) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockWebhookRepository is a mock implementation of settings.WebhookRepository
type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) FindEndpointByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.WebhookEndpoint, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookRepository) FindEndpointsByEvent(ctx context.Context, tenantID uuid.UUID, event settings.WebhookEvent) ([]*settings.WebhookEndpoint, error) {
	args := m.Called(ctx, tenantID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookRepository) FindAllEndpoints(ctx context.Context, tenantID uuid.UUID) ([]*settings.WebhookEndpoint, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookRepository) SaveEndpoint(ctx context.Context, w *settings.WebhookEndpoint) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWebhookRepository) DeleteEndpoint(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockWebhookRepository) FindRules(ctx context.Context, tenantID uuid.UUID) ([]*settings.NotificationRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.NotificationRule), args.Error(1)
}

func (m *MockWebhookRepository) SaveRule(ctx context.Context, r *settings.NotificationRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockWebhookRepository) DeleteRule(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockDeliverer is a mock implementation of Deliverer
type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, endpoint *settings.WebhookEndpoint, event settings.WebhookEvent, payload interface{}) error {
	args := m.Called(ctx, endpoint, event, payload)
	return args.Error(0)
}

// MockPaymentMethodRepository is a mock implementation of settings.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*settings.PaymentMethodConfig, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PaymentMethodConfig), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindByProvider(ctx context.Context, tenantID uuid.UUID, provider settings.PaymentProvider) (*settings.PaymentMethodConfig, error) {
	args := m.Called(ctx, tenantID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PaymentMethodConfig), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*settings.PaymentMethodConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.PaymentMethodConfig), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, p *settings.PaymentMethodConfig) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func TestPaymentConfigServiceEnabledProvider(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns enabled config", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentConfigService(repo, zap.NewNop())

		cfg, err := settings.NewPaymentMethodConfig(tenantID, settings.ProviderCard, "Card", "vault:card")
		require.NoError(t, err)
		cfg.Enable()
		repo.On("FindByProvider", mock.Anything, tenantID, settings.ProviderCard).Return(cfg, nil)

		got, err := svc.EnabledProvider(context.Background(), tenantID, settings.ProviderCard)
		require.NoError(t, err)
		assert.Equal(t, cfg.ID, got.ID)
	})

	t.Run("rejects disabled config", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentConfigService(repo, zap.NewNop())

		cfg, err := settings.NewPaymentMethodConfig(tenantID, settings.ProviderCard, "Card", "vault:card")
		require.NoError(t, err)
		repo.On("FindByProvider", mock.Anything, tenantID, settings.ProviderCard).Return(cfg, nil)

		_, err = svc.EnabledProvider(context.Background(), tenantID, settings.ProviderCard)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "PAYMENT_METHOD_DISABLED", derr.Code)
	})

	t.Run("propagates missing config", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentConfigService(repo, zap.NewNop())

		repo.On("FindByProvider", mock.Anything, tenantID, settings.ProviderMobileMoney).Return(nil, shared.ErrNotFound)

		_, err := svc.EnabledProvider(context.Background(), tenantID, settings.ProviderMobileMoney)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCurrencyServiceAdd(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("first currency becomes the default", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		repo.On("FindByCode", ctx, tenantID, "USD").Return(nil, shared.ErrNotFound)
		repo.On("FindAll", ctx, tenantID).Return([]*settings.Currency{}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*settings.Currency")).Return(nil)

		c, err := svc.Add(ctx, tenantID, "USD", "$", decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.True(t, c.IsDefault)
	})

	t.Run("subsequent currencies are not default", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		existing, err := settings.NewCurrency(tenantID, "USD", "$", decimal.NewFromInt(1))
		require.NoError(t, err)

		repo.On("FindByCode", ctx, tenantID, "EUR").Return(nil, shared.ErrNotFound)
		repo.On("FindAll", ctx, tenantID).Return([]*settings.Currency{existing}, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		c, err := svc.Add(ctx, tenantID, "EUR", "€", decimal.NewFromFloat(0.92))
		require.NoError(t, err)
		assert.False(t, c.IsDefault)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		existing, err := settings.NewCurrency(tenantID, "USD", "$", decimal.NewFromInt(1))
		require.NoError(t, err)
		repo.On("FindByCode", ctx, tenantID, "USD").Return(existing, nil)

		_, err = svc.Add(ctx, tenantID, "usd", "$", decimal.NewFromInt(1))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	})
}

func TestCurrencyServiceSetDefault(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("disabled currency cannot become default", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		c, err := settings.NewCurrency(tenantID, "GBP", "£", decimal.NewFromInt(1))
		require.NoError(t, err)
		require.NoError(t, c.Disable())
		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)

		err = svc.SetDefault(ctx, tenantID, c.ID)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("swap happens through the transactional repository call", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		c, err := settings.NewCurrency(tenantID, "EUR", "€", decimal.NewFromInt(1))
		require.NoError(t, err)
		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		repo.On("SetDefault", ctx, tenantID, c.ID).Return(nil)

		require.NoError(t, svc.SetDefault(ctx, tenantID, c.ID))
		repo.AssertExpectations(t)
	})

	t.Run("default currency cannot be removed", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := NewCurrencyService(repo, zap.NewNop())

		c, err := settings.NewCurrency(tenantID, "USD", "$", decimal.NewFromInt(1))
		require.NoError(t, err)
		c.IsDefault = true
		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)

		assert.Error(t, svc.Remove(ctx, tenantID, c.ID))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWebhookServiceTestFire(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newEndpoint := func(t *testing.T) *settings.WebhookEndpoint {
		t.Helper()
		w, err := settings.NewWebhookEndpoint(tenantID, "https://hooks.example.com", []settings.WebhookEvent{settings.EventOrderCreated})
		require.NoError(t, err)
		return w
	}

	t.Run("successful delivery resets failure streak", func(t *testing.T) {
		repo := new(MockWebhookRepository)
		deliverer := new(MockDeliverer)
		svc := NewWebhookService(repo, deliverer, zap.NewNop())

		endpoint := newEndpoint(t)
		endpoint.FailureCount = 3

		repo.On("FindEndpointByID", ctx, tenantID, endpoint.ID).Return(endpoint, nil)
		deliverer.On("Deliver", ctx, endpoint, settings.EventOrderCreated, mock.Anything).Return(nil)
		repo.On("SaveEndpoint", ctx, endpoint).Return(nil)

		require.NoError(t, svc.TestFire(ctx, tenantID, endpoint.ID))
		assert.Equal(t, 0, endpoint.FailureCount)
		require.NotNil(t, endpoint.LastFiredAt)
	})

	t.Run("failed delivery is recorded and returned", func(t *testing.T) {
		repo := new(MockWebhookRepository)
		deliverer := new(MockDeliverer)
		svc := NewWebhookService(repo, deliverer, zap.NewNop())

		endpoint := newEndpoint(t)
		repo.On("FindEndpointByID", ctx, tenantID, endpoint.ID).Return(endpoint, nil)
		deliverer.On("Deliver", ctx, endpoint, settings.EventOrderCreated, mock.Anything).Return(assert.AnError)
		repo.On("SaveEndpoint", ctx, endpoint).Return(nil)

		assert.Error(t, svc.TestFire(ctx, tenantID, endpoint.ID))
		assert.Equal(t, 1, endpoint.FailureCount)
	})
}

func TestWebhookServiceDispatch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockWebhookRepository)
	deliverer := new(MockDeliverer)
	svc := NewWebhookService(repo, deliverer, zap.NewNop())

	enabled, err := settings.NewWebhookEndpoint(tenantID, "https://a.example.com", []settings.WebhookEvent{settings.EventOrderPaid})
	require.NoError(t, err)
	disabled, err := settings.NewWebhookEndpoint(tenantID, "https://b.example.com", []settings.WebhookEvent{settings.EventOrderPaid})
	require.NoError(t, err)
	disabled.Enabled = false

	repo.On("FindEndpointsByEvent", ctx, tenantID, settings.EventOrderPaid).
		Return([]*settings.WebhookEndpoint{enabled, disabled}, nil)
	deliverer.On("Deliver", ctx, enabled, settings.EventOrderPaid, mock.Anything).Return(nil)
	repo.On("SaveEndpoint", ctx, enabled).Return(nil)

	svc.Dispatch(ctx, tenantID, settings.EventOrderPaid, map[string]string{"order": "o-1"})
	deliverer.AssertNumberOfCalls(t, "Deliver", 1)
}
