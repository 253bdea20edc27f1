package support

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// LoyaltyService adjusts customer point balances. Every adjustment
// writes the customer and a ledger entry in one transaction.
type LoyaltyService struct {
	customers customer.Repository
	ledger    customer.LedgerRepository
	logger    *zap.Logger
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(customers customer.Repository, ledger customer.LedgerRepository, logger *zap.Logger) *LoyaltyService {
	return &LoyaltyService{
		customers: customers,
		ledger:    ledger,
		logger:    logger,
	}
}

// Adjust applies a point delta. Debits floor at zero; the ledger records
// the delta actually applied, not the requested one.
func (s *LoyaltyService) Adjust(ctx context.Context, input AdjustPointsInput) (*AdjustPointsResult, error) {
	if input.Delta == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Point adjustment cannot be zero")
	}

	c, err := s.customers.FindByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	applied := c.ApplyPointsDelta(input.Delta)
	if applied == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Customer has no points to debit")
	}

	actorID := input.ActorID
	tx, err := customer.NewLoyaltyTransaction(input.TenantID, input.CustomerID, applied, c.LoyaltyPoints, input.Reason, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.customers.SaveWithLedger(ctx, c, tx); err != nil {
		s.logger.Error("Failed to persist loyalty adjustment",
			zap.String("customer_id", input.CustomerID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Loyalty points adjusted",
		zap.String("customer_id", input.CustomerID.String()),
		zap.Int64("requested", input.Delta),
		zap.Int64("applied", applied),
		zap.Int64("balance", c.LoyaltyPoints))

	return &AdjustPointsResult{
		AppliedDelta: applied,
		Balance:      c.LoyaltyPoints,
		Tier:         c.LoyaltyTier,
	}, nil
}

// Ledger returns a page of the customer's loyalty history
func (s *LoyaltyService) Ledger(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]LedgerView, error) {
	entries, err := s.ledger.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, err
	}
	views := make([]LedgerView, len(entries))
	for i, e := range entries {
		views[i] = LedgerView{
			ID:           e.ID,
			Delta:        e.Delta,
			BalanceAfter: e.BalanceAfter,
			Reason:       e.Reason,
			ActorID:      e.ActorID,
			CreatedAt:    e.CreatedAt,
		}
	}
	return views, nil
}
