package customer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Repository defines persistence operations for customers
type Repository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Customer, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Customer) error
	// SaveWithLedger persists the customer and the ledger entry in one
	// transaction (loyalty adjustments must not split).
	SaveWithLedger(ctx context.Context, c *Customer, tx *LoyaltyTransaction) error
}

// NoteRepository defines persistence operations for customer notes
type NoteRepository interface {
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Note, error)
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
	Save(ctx context.Context, note *Note) error
}

// TagRepository defines persistence operations for tags and assignments
type TagRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Tag, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Tag, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Tag, error)
	Save(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	FindAssignments(ctx context.Context, tenantID, customerID uuid.UUID) ([]TagAssignment, error)
	AssignmentExists(ctx context.Context, tenantID, customerID, tagID uuid.UUID) (bool, error)
	SaveAssignment(ctx context.Context, assignment *TagAssignment) error
	DeleteAssignment(ctx context.Context, tenantID, customerID, tagID uuid.UUID) error
}

// SegmentRepository defines persistence operations for segments
type SegmentRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Segment, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Segment, error)
	Save(ctx context.Context, segment *Segment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	FindMemberships(ctx context.Context, tenantID, customerID uuid.UUID) ([]SegmentAssignment, error)
	ReplaceMemberships(ctx context.Context, tenantID, customerID uuid.UUID, assignments []SegmentAssignment) error
}

// LedgerRepository defines read operations for the loyalty ledger.
// Entries are written through Repository.SaveWithLedger only.
type LedgerRepository interface {
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]LoyaltyTransaction, error)
	FindSince(ctx context.Context, tenantID, customerID uuid.UUID, since time.Time) ([]LoyaltyTransaction, error)
}

// AuditRepository defines persistence operations for the action timeline
type AuditRepository interface {
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]AuditEntry, error)
	Save(ctx context.Context, entry *AuditEntry) error
}

// TicketRepository defines persistence operations for support tickets
type TicketRepository interface {
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Ticket, error)
	Save(ctx context.Context, ticket *Ticket) error
}
