package support

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
)

// SegmentService manages segment definitions and recomputes customer
// membership against their rules.
type SegmentService struct {
	segments  customer.SegmentRepository
	customers customer.Repository
	logger    *zap.Logger
}

// NewSegmentService creates a new segment service
func NewSegmentService(segments customer.SegmentRepository, customers customer.Repository, logger *zap.Logger) *SegmentService {
	return &SegmentService{
		segments:  segments,
		customers: customers,
		logger:    logger,
	}
}

// CreateSegment defines a new segment
func (s *SegmentService) CreateSegment(ctx context.Context, tenantID uuid.UUID, name, description string, minSpent decimal.Decimal, minPoints int64, minTenureMonths int) (*customer.Segment, error) {
	segment, err := customer.NewSegment(tenantID, name, description, minSpent, minPoints, minTenureMonths)
	if err != nil {
		return nil, err
	}
	if err := s.segments.Save(ctx, segment); err != nil {
		return nil, err
	}
	return segment, nil
}

// ListSegments returns every segment defined for the tenant
func (s *SegmentService) ListSegments(ctx context.Context, tenantID uuid.UUID) ([]customer.Segment, error) {
	return s.segments.FindAll(ctx, tenantID)
}

// DeleteSegment removes a segment definition
func (s *SegmentService) DeleteSegment(ctx context.Context, tenantID, segmentID uuid.UUID) error {
	return s.segments.Delete(ctx, tenantID, segmentID)
}

// Memberships returns the segments a customer currently belongs to
func (s *SegmentService) Memberships(ctx context.Context, tenantID, customerID uuid.UUID) ([]SegmentView, error) {
	assignments, err := s.segments.FindMemberships(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	views := make([]SegmentView, 0, len(assignments))
	for _, a := range assignments {
		segment, err := s.segments.FindByID(ctx, tenantID, a.SegmentID)
		if err != nil {
			continue
		}
		views = append(views, SegmentView{ID: segment.ID, Name: segment.Name})
	}
	return views, nil
}

// Recompute re-evaluates every segment rule for a customer and replaces
// the stored memberships with the current matches.
func (s *SegmentService) Recompute(ctx context.Context, tenantID, customerID uuid.UUID) ([]SegmentView, error) {
	c, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	segments, err := s.segments.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	matched := make([]customer.SegmentAssignment, 0, len(segments))
	views := make([]SegmentView, 0, len(segments))
	for i := range segments {
		if segments[i].Matches(c, now) {
			matched = append(matched, *customer.NewSegmentAssignment(tenantID, customerID, segments[i].ID))
			views = append(views, SegmentView{ID: segments[i].ID, Name: segments[i].Name})
		}
	}

	if err := s.segments.ReplaceMemberships(ctx, tenantID, customerID, matched); err != nil {
		return nil, err
	}

	s.logger.Debug("Segment membership recomputed",
		zap.String("customer_id", customerID.String()),
		zap.Int("segments", len(views)))
	return views, nil
}
