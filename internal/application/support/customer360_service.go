package support

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// recentLedgerSize bounds the ledger preview in the 360 view
const recentLedgerSize = 10

// Customer360Service aggregates everything the console shows about one
// customer. Independent reads run concurrently and are joined before
// role-based masking is applied.
type Customer360Service struct {
	customers customer.Repository
	notes     customer.NoteRepository
	ledger    customer.LedgerRepository
	audits    customer.AuditRepository
	tags      *TagService
	segments  *SegmentService
	logger    *zap.Logger
}

// NewCustomer360Service creates a new Customer 360 service
func NewCustomer360Service(
	customers customer.Repository,
	notes customer.NoteRepository,
	ledger customer.LedgerRepository,
	audits customer.AuditRepository,
	tags *TagService,
	segments *SegmentService,
	logger *zap.Logger,
) *Customer360Service {
	return &Customer360Service{
		customers: customers,
		notes:     notes,
		ledger:    ledger,
		audits:    audits,
		tags:      tags,
		segments:  segments,
		logger:    logger,
	}
}

// Get assembles the 360 view for the requesting admin. Viewers get a
// masked profile with no financial metrics and no notes count.
func (s *Customer360Service) Get(ctx context.Context, tenantID, customerID uuid.UUID, viewer *identity.AdminUser) (*Customer360View, error) {
	c, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		notesCount int64
		notesErr   error
		tags       []TagView
		tagsErr    error
		segments   []SegmentView
		segErr     error
		ledger     []customer.LoyaltyTransaction
		ledgerErr  error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		notesCount, notesErr = s.notes.CountByCustomer(ctx, tenantID, customerID)
	}()
	go func() {
		defer wg.Done()
		tags, tagsErr = s.tags.CustomerTags(ctx, tenantID, customerID)
	}()
	go func() {
		defer wg.Done()
		segments, segErr = s.segments.Memberships(ctx, tenantID, customerID)
	}()
	go func() {
		defer wg.Done()
		ledger, ledgerErr = s.ledger.FindByCustomer(ctx, tenantID, customerID, shared.Filter{Page: 1, PageSize: recentLedgerSize, OrderBy: "created_at", OrderDir: "desc"})
	}()
	wg.Wait()

	for _, err := range []error{notesErr, tagsErr, segErr, ledgerErr} {
		if err != nil {
			s.logger.Error("Customer 360 fan-out read failed",
				zap.String("customer_id", customerID.String()),
				zap.Error(err))
			return nil, err
		}
	}

	view := &Customer360View{
		Profile:  NewCustomerView(c),
		Tags:     tags,
		Segments: segments,
	}

	if viewer != nil && viewer.Role == identity.RoleViewer {
		view.Profile.Email = maskEmail(view.Profile.Email)
		view.Profile.Phone = maskPhone(view.Profile.Phone)
	} else {
		metrics := computeMetrics(c, time.Now())
		view.Metrics = &metrics
		view.NotesCount = &notesCount
		view.RecentLedger = make([]LedgerView, len(ledger))
		for i, e := range ledger {
			view.RecentLedger[i] = LedgerView{
				ID:           e.ID,
				Delta:        e.Delta,
				BalanceAfter: e.BalanceAfter,
				Reason:       e.Reason,
				ActorID:      e.ActorID,
				CreatedAt:    e.CreatedAt,
			}
		}
	}

	if viewer != nil {
		s.recordView(ctx, tenantID, customerID, viewer.UserID)
	}
	return view, nil
}

// recordView appends a profile-view audit entry, best-effort
func (s *Customer360Service) recordView(ctx context.Context, tenantID, customerID, actorID uuid.UUID) {
	entry := customer.NewAuditEntry(tenantID, customerID, actorID, customer.AuditProfileViewed, "")
	if err := s.audits.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to record profile view", zap.Error(err))
	}
}

// computeMetrics derives the financial and engagement metrics shown in
// the console. The health score is a heuristic blend of recency,
// frequency and monetary signals on a 0..100 scale.
func computeMetrics(c *customer.Customer, now time.Time) Metrics {
	tenure := c.TenureMonths(now)

	ordersPerMonth := 0.0
	if tenure > 0 {
		ordersPerMonth = float64(c.OrderCount) / float64(tenure)
	} else {
		ordersPerMonth = float64(c.OrderCount)
	}

	score := healthScore(c, now, ordersPerMonth)

	risk := "high"
	switch {
	case score >= 70:
		risk = "low"
	case score >= 40:
		risk = "medium"
	}

	return Metrics{
		LifetimeValue:  c.TotalSpent,
		OrderCount:     c.OrderCount,
		OrdersPerMonth: ordersPerMonth,
		TenureMonths:   tenure,
		LastOrderAt:    c.LastOrderAt,
		HealthScore:    score,
		ChurnRisk:      risk,
	}
}

func healthScore(c *customer.Customer, now time.Time, ordersPerMonth float64) int {
	// Recency: up to 40 points, decaying with days since last order.
	recency := 0
	if c.LastOrderAt != nil {
		days := int(now.Sub(*c.LastOrderAt).Hours() / 24)
		switch {
		case days <= 30:
			recency = 40
		case days <= 90:
			recency = 25
		case days <= 180:
			recency = 10
		}
	}

	// Frequency: up to 30 points at one order per month.
	frequency := int(ordersPerMonth * 30)
	if frequency > 30 {
		frequency = 30
	}

	// Monetary: up to 30 points, saturating at 1000 spent.
	monetary := 0
	if c.TotalSpent.IsPositive() {
		spent, _ := c.TotalSpent.Float64()
		monetary = int(spent / 1000 * 30)
		if monetary > 30 {
			monetary = 30
		}
	}

	return recency + frequency + monetary
}
