package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// MaxNoteLength bounds note content; longer notes are rejected before
// any write occurs.
const MaxNoteLength = 5000

// Note is a free-text annotation on a customer, attributed to the
// authoring admin. Notes are immutable once created; corrections are
// made through new notes.
type Note struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (Note) TableName() string {
	return "customer_notes"
}

// NewNote creates a customer note attributed to the authoring admin
func NewNote(tenantID, customerID, authorID uuid.UUID, content string) (*Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note content cannot be empty")
	}
	if len(content) > MaxNoteLength {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note content cannot exceed 5000 characters")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Note author is required")
	}

	return &Note{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: customerID,
		AuthorID:   authorID,
		Content:    content,
		CreatedAt:  time.Now(),
	}, nil
}
