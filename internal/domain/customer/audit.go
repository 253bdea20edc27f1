package customer

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies the kind of admin action recorded in a
// customer's timeline.
type AuditAction string

const (
	AuditNoteAdded      AuditAction = "note_added"
	AuditTagAssigned    AuditAction = "tag_assigned"
	AuditTagUnassigned  AuditAction = "tag_unassigned"
	AuditPointsAdjusted AuditAction = "points_adjusted"
	AuditEmailSent      AuditAction = "email_sent"
	AuditTicketCreated  AuditAction = "ticket_created"
	AuditProfileViewed  AuditAction = "profile_viewed"
)

// AuditEntry is an append-only record of an admin action against a
// customer. Writes are best-effort: a failed audit insert never fails
// the primary action.
type AuditEntry struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID   `gorm:"type:uuid;not null"`
	Action     AuditAction `gorm:"type:varchar(40);not null"`
	Detail     string      `gorm:"type:text"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (AuditEntry) TableName() string {
	return "customer_audit_entries"
}

// NewAuditEntry creates a timeline record for an admin action
func NewAuditEntry(tenantID, customerID, actorID uuid.UUID, action AuditAction, detail string) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: customerID,
		ActorID:    actorID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

// Ticket is a lightweight support ticket raised from the console
type Ticket struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	Subject    string    `gorm:"type:varchar(200);not null"`
	Body       string    `gorm:"type:text"`
	Priority   string    `gorm:"type:varchar(10);not null;default:'normal'"`
	Status     string    `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "support_tickets"
}
