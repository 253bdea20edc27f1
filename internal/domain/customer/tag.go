package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

var tagNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Tag is an admin-defined label applied to customers
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tag_tenant_name,priority:1"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_tenant_name,priority:2"`
	Color     string    `gorm:"type:varchar(7)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "customer_tags"
}

// NewTag creates a tag. Names are normalized to lowercase.
func NewTag(tenantID uuid.UUID, name, color string) (*Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag name cannot exceed 50 characters")
	}
	if !tagNamePattern.MatchString(name) {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag name can only contain lowercase letters, digits, hyphen and underscore")
	}
	if color != "" && !regexp.MustCompile(`^#[0-9a-fA-F]{6}$`).MatchString(color) {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag color must be a hex value like #ff8800")
	}

	now := time.Now()
	return &Tag{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TagAssignment links a tag to a customer. The (customer, tag) pair is
// unique; a second assignment conflicts.
type TagAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_pair,priority:1"`
	TagID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_pair,priority:2"`
	AssignedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (TagAssignment) TableName() string {
	return "customer_tag_assignments"
}

// NewTagAssignment creates an assignment attributed to the acting admin
func NewTagAssignment(tenantID, customerID, tagID, assignedBy uuid.UUID) *TagAssignment {
	return &TagAssignment{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: customerID,
		TagID:      tagID,
		AssignedBy: assignedBy,
		CreatedAt:  time.Now(),
	}
}
