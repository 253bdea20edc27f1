package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Segment groups customers by rule: minimum spend, minimum points and
// minimum tenure are combined with AND semantics.
type Segment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_segment_tenant_name,priority:1"`
	Name         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_segment_tenant_name,priority:2"`
	Description  string          `gorm:"type:varchar(500)"`
	MinSpent     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinPoints    int64           `gorm:"not null;default:0"`
	MinTenureMon int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (Segment) TableName() string {
	return "customer_segments"
}

// NewSegment creates a segment definition
func NewSegment(tenantID uuid.UUID, name, description string, minSpent decimal.Decimal, minPoints int64, minTenureMonths int) (*Segment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SEGMENT", "Segment name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SEGMENT", "Segment name cannot exceed 100 characters")
	}
	if minSpent.IsNegative() || minPoints < 0 || minTenureMonths < 0 {
		return nil, shared.NewDomainError("INVALID_SEGMENT", "Segment thresholds cannot be negative")
	}

	now := time.Now()
	return &Segment{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         name,
		Description:  strings.TrimSpace(description),
		MinSpent:     minSpent,
		MinPoints:    minPoints,
		MinTenureMon: minTenureMonths,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Matches reports whether a customer satisfies the segment rule
func (s *Segment) Matches(c *Customer, now time.Time) bool {
	if c.TotalSpent.LessThan(s.MinSpent) {
		return false
	}
	if c.LoyaltyPoints < s.MinPoints {
		return false
	}
	if c.TenureMonths(now) < s.MinTenureMon {
		return false
	}
	return true
}

// SegmentAssignment records a customer's membership in a segment
type SegmentAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_segment_member,priority:1"`
	SegmentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_segment_member,priority:2"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (SegmentAssignment) TableName() string {
	return "customer_segment_assignments"
}

// NewSegmentAssignment creates a membership record
func NewSegmentAssignment(tenantID, customerID, segmentID uuid.UUID) *SegmentAssignment {
	return &SegmentAssignment{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: customerID,
		SegmentID:  segmentID,
		CreatedAt:  time.Now(),
	}
}
