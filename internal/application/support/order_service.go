package support

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/settings"
)

// FavoritesRecorder folds purchased categories and tags into the
// customer's personalization profile
type FavoritesRecorder interface {
	Record(ctx context.Context, tenantID, customerID uuid.UUID, category string, tags []string) error
}

// WebhookDispatcher fans a tenant event out to subscribed endpoints
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, tenantID uuid.UUID, event settings.WebhookEvent, payload interface{})
}

// OrderItem is the slice of an order relevant to personalization
type OrderItem struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// PaidOrderInput describes a settled order reported by a gateway
type PaidOrderInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	OrderID    string
	Total      decimal.Decimal
	Currency   string
	PaidAt     time.Time
	Items      []OrderItem
}

// OrderService folds settled orders into customer aggregates: spend
// and order counters, loyalty accrual with a ledger entry, and the
// personalization profile. Favorites and the webhook fan-out are
// best-effort.
type OrderService struct {
	customers customer.Repository
	favorites FavoritesRecorder
	webhooks  WebhookDispatcher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(customers customer.Repository, favorites FavoritesRecorder, webhooks WebhookDispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{
		customers: customers,
		favorites: favorites,
		webhooks:  webhooks,
		logger:    logger,
	}
}

// HandlePaid applies one settled order. One loyalty point accrues per
// whole currency unit spent.
func (s *OrderService) HandlePaid(ctx context.Context, input PaidOrderInput) error {
	c, err := s.customers.FindByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return err
	}

	if err := c.RecordOrder(input.Total, input.PaidAt); err != nil {
		return err
	}

	points := input.Total.IntPart()
	if points > 0 {
		applied := c.ApplyPointsDelta(points)
		tx, err := customer.NewLoyaltyTransaction(input.TenantID, input.CustomerID, applied, c.LoyaltyPoints,
			"Order "+input.OrderID, nil)
		if err != nil {
			return err
		}
		if err := s.customers.SaveWithLedger(ctx, c, tx); err != nil {
			return err
		}
	} else {
		if err := s.customers.Save(ctx, c); err != nil {
			return err
		}
	}

	for _, item := range input.Items {
		if err := s.favorites.Record(ctx, input.TenantID, input.CustomerID, item.Category, item.Tags); err != nil {
			s.logger.Warn("Failed to record purchase favorites",
				zap.String("customer_id", input.CustomerID.String()),
				zap.Error(err))
			break
		}
	}

	s.webhooks.Dispatch(ctx, input.TenantID, settings.EventOrderPaid, map[string]interface{}{
		"order_id":    input.OrderID,
		"customer_id": input.CustomerID,
		"total":       input.Total,
		"currency":    input.Currency,
		"paid_at":     input.PaidAt,
	})

	s.logger.Info("Order settled",
		zap.String("order_id", input.OrderID),
		zap.String("customer_id", input.CustomerID.String()),
		zap.String("total", input.Total.String()),
		zap.Int64("balance", c.LoyaltyPoints))
	return nil
}
