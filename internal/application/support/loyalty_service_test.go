package support

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
)

func newTestCustomer(t *testing.T, tenantID uuid.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(tenantID, "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)
	return c
}

func TestLoyaltyServiceAdjust(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	actorID := uuid.New()

	t.Run("credit raises balance and tier", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewLoyaltyService(repo, new(MockLedgerRepository), zap.NewNop())
		c := newTestCustomer(t, tenantID)

		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		repo.On("SaveWithLedger", ctx, c, mock.AnythingOfType("*customer.LoyaltyTransaction")).Return(nil)

		result, err := svc.Adjust(ctx, AdjustPointsInput{TenantID: tenantID, CustomerID: c.ID, ActorID: actorID, Delta: 1200, Reason: "goodwill"})
		require.NoError(t, err)
		assert.Equal(t, int64(1200), result.AppliedDelta)
		assert.Equal(t, int64(1200), result.Balance)
		assert.Equal(t, customer.TierSilver, result.Tier)
	})

	t.Run("debit floors at zero and ledger records applied delta", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewLoyaltyService(repo, new(MockLedgerRepository), zap.NewNop())
		c := newTestCustomer(t, tenantID)
		c.ApplyPointsDelta(300)

		var recorded *customer.LoyaltyTransaction
		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		repo.On("SaveWithLedger", ctx, c, mock.AnythingOfType("*customer.LoyaltyTransaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(2).(*customer.LoyaltyTransaction)
			}).Return(nil)

		result, err := svc.Adjust(ctx, AdjustPointsInput{TenantID: tenantID, CustomerID: c.ID, ActorID: actorID, Delta: -1000, Reason: "correction"})
		require.NoError(t, err)
		assert.Equal(t, int64(-300), result.AppliedDelta)
		assert.Equal(t, int64(0), result.Balance)
		require.NotNil(t, recorded)
		assert.Equal(t, int64(-300), recorded.Delta)
		assert.Equal(t, int64(0), recorded.BalanceAfter)
	})

	t.Run("zero delta is rejected before any lookup", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewLoyaltyService(repo, new(MockLedgerRepository), zap.NewNop())

		_, err := svc.Adjust(ctx, AdjustPointsInput{TenantID: tenantID, CustomerID: uuid.New(), Delta: 0})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("debit against empty balance is rejected", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewLoyaltyService(repo, new(MockLedgerRepository), zap.NewNop())
		c := newTestCustomer(t, tenantID)

		repo.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)

		_, err := svc.Adjust(ctx, AdjustPointsInput{TenantID: tenantID, CustomerID: c.ID, Delta: -50, Reason: "oops"})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveWithLedger", mock.Anything, mock.Anything, mock.Anything)
	})
}
