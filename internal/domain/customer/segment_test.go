package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentMatches(t *testing.T) {
	tenantID := uuid.New()
	now := time.Now()

	seg, err := NewSegment(tenantID, "big-spenders", "spent over 500", decimal.NewFromInt(500), 1000, 3)
	require.NoError(t, err)

	newMember := func(t *testing.T) *Customer {
		c, err := NewCustomer(tenantID, "member@example.com", "M", "Ember")
		require.NoError(t, err)
		c.CreatedAt = now.AddDate(0, -6, 0)
		c.TotalSpent = decimal.NewFromInt(800)
		c.LoyaltyPoints = 1500
		return c
	}

	t.Run("matches when all thresholds met", func(t *testing.T) {
		assert.True(t, seg.Matches(newMember(t), now))
	})

	t.Run("fails on spend threshold", func(t *testing.T) {
		c := newMember(t)
		c.TotalSpent = decimal.NewFromInt(100)
		assert.False(t, seg.Matches(c, now))
	})

	t.Run("fails on points threshold", func(t *testing.T) {
		c := newMember(t)
		c.LoyaltyPoints = 10
		assert.False(t, seg.Matches(c, now))
	})

	t.Run("fails on tenure threshold", func(t *testing.T) {
		c := newMember(t)
		c.CreatedAt = now.AddDate(0, -1, 0)
		assert.False(t, seg.Matches(c, now))
	})
}

func TestNewSegmentValidation(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		seg, err := NewSegment(uuid.New(), " ", "", decimal.Zero, 0, 0)
		assert.Error(t, err)
		assert.Nil(t, seg)
	})

	t.Run("rejects negative thresholds", func(t *testing.T) {
		seg, err := NewSegment(uuid.New(), "neg", "", decimal.NewFromInt(-1), 0, 0)
		assert.Error(t, err)
		assert.Nil(t, seg)
	})
}

func TestTenureMonths(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "tenure@example.com", "T", "Enure")
	require.NoError(t, err)

	now := time.Now()
	c.CreatedAt = now.AddDate(0, -7, -3)

	assert.Equal(t, 7, c.TenureMonths(now))
	assert.Equal(t, 0, c.TenureMonths(c.CreatedAt))
}
