package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a customer account
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is the aggregate root for a storefront customer account.
type Customer struct {
	shared.TenantAggregateRoot
	Email         string `gorm:"type:varchar(200);not null;uniqueIndex:idx_customer_tenant_email,priority:2"`
	Phone         string `gorm:"type:varchar(50);index"`
	FirstName     string `gorm:"type:varchar(100)"`
	LastName      string `gorm:"type:varchar(100)"`
	Status        Status `gorm:"type:varchar(20);not null;default:'active'"`
	LoyaltyPoints int64  `gorm:"not null;default:0"`
	LoyaltyTier   Tier   `gorm:"type:varchar(20);not null;default:'BRONZE'"`
	OrderCount    int    `gorm:"not null;default:0"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastOrderAt   *time.Time
	City          string `gorm:"type:varchar(100)"`
	Country       string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer account
func NewCustomer(tenantID uuid.UUID, email, firstName, lastName string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email is not a valid address")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		FirstName:           strings.TrimSpace(firstName),
		LastName:            strings.TrimSpace(lastName),
		Status:              StatusActive,
		LoyaltyTier:         TierBronze,
		TotalSpent:          decimal.Zero,
	}, nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// RecordOrder folds a completed order into the customer's aggregates
func (c *Customer) RecordOrder(total decimal.Decimal, placedAt time.Time) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER_TOTAL", "Order total cannot be negative")
	}
	c.OrderCount++
	c.TotalSpent = c.TotalSpent.Add(total)
	c.LastOrderAt = &placedAt
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ApplyPointsDelta adjusts the loyalty balance, flooring at zero on debit,
// and recomputes the tier. It returns the delta actually applied.
func (c *Customer) ApplyPointsDelta(delta int64) int64 {
	applied := delta
	if delta < 0 && c.LoyaltyPoints+delta < 0 {
		applied = -c.LoyaltyPoints
	}
	c.LoyaltyPoints += applied
	c.LoyaltyTier = TierForPoints(c.LoyaltyPoints)
	c.Touch()
	c.IncrementVersion()
	return applied
}

// Block suspends the customer account
func (c *Customer) Block() {
	c.Status = StatusBlocked
	c.Touch()
	c.IncrementVersion()
}

// Unblock reactivates a blocked customer account
func (c *Customer) Unblock() {
	c.Status = StatusActive
	c.Touch()
	c.IncrementVersion()
}

// TenureMonths returns whole months since registration
func (c *Customer) TenureMonths(now time.Time) int {
	if now.Before(c.CreatedAt) {
		return 0
	}
	months := 0
	cursor := c.CreatedAt
	for cursor.AddDate(0, 1, 0).Before(now) || cursor.AddDate(0, 1, 0).Equal(now) {
		cursor = cursor.AddDate(0, 1, 0)
		months++
	}
	return months
}
