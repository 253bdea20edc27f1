package settings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid ISO code", func(t *testing.T) {
		c, err := NewCurrency(tenantID, "usd", "$", decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.Equal(t, "USD", c.Code)
		assert.True(t, c.Enabled)
		assert.False(t, c.IsDefault)
	})

	t.Run("rejects unknown code", func(t *testing.T) {
		c, err := NewCurrency(tenantID, "XYZ", "?", decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		c, err := NewCurrency(tenantID, "EUR", "€", decimal.Zero)
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestCurrencyDisable(t *testing.T) {
	c, err := NewCurrency(uuid.New(), "GBP", "£", decimal.NewFromFloat(0.79))
	require.NoError(t, err)

	t.Run("default cannot be disabled", func(t *testing.T) {
		c.IsDefault = true
		assert.Error(t, c.Disable())
		assert.True(t, c.Enabled)
	})

	t.Run("non-default disables", func(t *testing.T) {
		c.IsDefault = false
		require.NoError(t, c.Disable())
		assert.False(t, c.Enabled)
	})
}

func TestNewLanguage(t *testing.T) {
	tenantID := uuid.New()

	t.Run("canonicalizes tag", func(t *testing.T) {
		l, err := NewLanguage(tenantID, "en-us", "English (US)")
		require.NoError(t, err)
		assert.Equal(t, "en-US", l.Tag)
	})

	t.Run("rejects garbage tag", func(t *testing.T) {
		l, err := NewLanguage(tenantID, "not a tag!!", "Nope")
		assert.Error(t, err)
		assert.Nil(t, l)
	})

	t.Run("default cannot be disabled", func(t *testing.T) {
		l, err := NewLanguage(tenantID, "fr", "French")
		require.NoError(t, err)
		l.IsDefault = true
		assert.Error(t, l.Disable())
	})
}

func TestNewShippingZone(t *testing.T) {
	tenantID := uuid.New()

	t.Run("normalizes and deduplicates countries", func(t *testing.T) {
		z, err := NewShippingZone(tenantID, "Europe", []string{"de", "FR", " de "})
		require.NoError(t, err)
		assert.Equal(t, []string{"DE", "FR"}, z.Countries)
		assert.True(t, z.Covers("fr"))
		assert.False(t, z.Covers("US"))
	})

	t.Run("rejects empty country list", func(t *testing.T) {
		z, err := NewShippingZone(tenantID, "Nowhere", nil)
		assert.Error(t, err)
		assert.Nil(t, z)
	})

	t.Run("rejects bad country code", func(t *testing.T) {
		z, err := NewShippingZone(tenantID, "Bad", []string{"DEU"})
		assert.Error(t, err)
		assert.Nil(t, z)
	})
}

func TestNewShippingMethod(t *testing.T) {
	tenantID := uuid.New()
	zoneID := uuid.New()

	t.Run("valid method", func(t *testing.T) {
		m, err := NewShippingMethod(tenantID, zoneID, "Express", decimal.NewFromFloat(9.99), 2)
		require.NoError(t, err)
		assert.True(t, m.Enabled)
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		m, err := NewShippingMethod(tenantID, zoneID, "Express", decimal.NewFromInt(-1), 2)
		assert.Error(t, err)
		assert.Nil(t, m)
	})
}

func TestNewPaymentMethodConfig(t *testing.T) {
	tenantID := uuid.New()

	t.Run("starts disabled", func(t *testing.T) {
		p, err := NewPaymentMethodConfig(tenantID, ProviderCard, "Credit card", "card-prod")
		require.NoError(t, err)
		assert.False(t, p.Enabled)

		p.Enable()
		assert.True(t, p.Enabled)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		p, err := NewPaymentMethodConfig(tenantID, "CRYPTO", "Coins", "")
		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestSecurityPolicy(t *testing.T) {
	policy := DefaultSecurityPolicy(uuid.New())

	t.Run("default session lasts seven days", func(t *testing.T) {
		assert.Equal(t, 7*24*time.Hour, policy.SessionDuration())
	})

	t.Run("update validates bounds", func(t *testing.T) {
		assert.Error(t, policy.Update(4, false, 24*time.Hour, 5, 15))
		assert.Error(t, policy.Update(8, false, time.Minute, 5, 15))
		assert.Error(t, policy.Update(8, false, 24*time.Hour, 0, 15))

		require.NoError(t, policy.Update(12, true, 48*time.Hour, 3, 30))
		assert.Equal(t, 48*time.Hour, policy.SessionDuration())
		assert.True(t, policy.RequireMFA)
	})

	t.Run("empty allowlist permits all", func(t *testing.T) {
		assert.True(t, policy.AllowsIP("203.0.113.9"))
	})

	t.Run("populated allowlist filters", func(t *testing.T) {
		policy.IPAllowlist = []string{"10.0.0.1"}
		assert.True(t, policy.AllowsIP("10.0.0.1"))
		assert.False(t, policy.AllowsIP("10.0.0.2"))
	})
}

func TestNewWebhookEndpoint(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid endpoint gets a secret", func(t *testing.T) {
		w, err := NewWebhookEndpoint(tenantID, "https://hooks.example.com/orders", []WebhookEvent{EventOrderCreated, EventOrderPaid})
		require.NoError(t, err)
		assert.Len(t, w.Secret, 64)
		assert.True(t, w.SubscribedTo(EventOrderPaid))
		assert.False(t, w.SubscribedTo(EventTicketCreated))
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		w, err := NewWebhookEndpoint(tenantID, "ftp://example.com", []WebhookEvent{EventOrderCreated})
		assert.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("rejects unknown event", func(t *testing.T) {
		w, err := NewWebhookEndpoint(tenantID, "https://example.com", []WebhookEvent{"order.deleted"})
		assert.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("rejects empty event list", func(t *testing.T) {
		w, err := NewWebhookEndpoint(tenantID, "https://example.com", nil)
		assert.Error(t, err)
		assert.Nil(t, w)
	})
}

func TestWebhookFailureStreak(t *testing.T) {
	w, err := NewWebhookEndpoint(uuid.New(), "https://hooks.example.com", []WebhookEvent{EventOrderCreated})
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 9; i++ {
		w.RecordFailure(now)
	}
	assert.True(t, w.Enabled)

	w.RecordFailure(now)
	assert.False(t, w.Enabled)
	assert.Equal(t, 10, w.FailureCount)

	w.RecordSuccess(now)
	assert.Equal(t, 0, w.FailureCount)
	require.NotNil(t, w.LastFiredAt)
}
