package support

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/customer"
)

// CustomerView is the profile section of the Customer 360 response.
// Email and phone are masked for viewers.
type CustomerView struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FullName      string          `json:"full_name"`
	Status        customer.Status `json:"status"`
	LoyaltyPoints int64           `json:"loyalty_points"`
	LoyaltyTier   customer.Tier   `json:"loyalty_tier"`
	City          string          `json:"city,omitempty"`
	Country       string          `json:"country,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewCustomerView maps a domain customer to its API shape
func NewCustomerView(c *customer.Customer) CustomerView {
	return CustomerView{
		ID:            c.ID,
		Email:         c.Email,
		Phone:         c.Phone,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		FullName:      c.FullName(),
		Status:        c.Status,
		LoyaltyPoints: c.LoyaltyPoints,
		LoyaltyTier:   c.LoyaltyTier,
		City:          c.City,
		Country:       c.Country,
		CreatedAt:     c.CreatedAt,
	}
}

// Metrics is the financial section of the Customer 360 response.
// Omitted entirely for viewers.
type Metrics struct {
	LifetimeValue  decimal.Decimal `json:"lifetime_value"`
	OrderCount     int             `json:"order_count"`
	OrdersPerMonth float64         `json:"orders_per_month"`
	TenureMonths   int             `json:"tenure_months"`
	LastOrderAt    *time.Time      `json:"last_order_at,omitempty"`
	HealthScore    int             `json:"health_score"`
	ChurnRisk      string          `json:"churn_risk"`
}

// TagView is a tag membership as shown in the console
type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color,omitempty"`
}

// SegmentView is a segment membership as shown in the console
type SegmentView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// LedgerView is a loyalty ledger entry as shown in the console
type LedgerView struct {
	ID           uuid.UUID  `json:"id"`
	Delta        int64      `json:"delta"`
	BalanceAfter int64      `json:"balance_after"`
	Reason       string     `json:"reason,omitempty"`
	ActorID      *uuid.UUID `json:"actor_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NoteView is a customer note as shown in the console
type NoteView struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer360View is the aggregated console view of one customer
type Customer360View struct {
	Profile      CustomerView  `json:"profile"`
	Metrics      *Metrics      `json:"metrics,omitempty"`
	NotesCount   *int64        `json:"notes_count,omitempty"`
	Tags         []TagView     `json:"tags"`
	Segments     []SegmentView `json:"segments"`
	RecentLedger []LedgerView  `json:"recent_ledger,omitempty"`
}

// AdjustPointsInput is the input for a manual loyalty adjustment
type AdjustPointsInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	ActorID    uuid.UUID
	Delta      int64
	Reason     string
}

// AdjustPointsResult reports the adjustment as applied
type AdjustPointsResult struct {
	AppliedDelta int64         `json:"applied_delta"`
	Balance      int64         `json:"balance"`
	Tier         customer.Tier `json:"tier"`
}

// CreateNoteInput is the input for adding a customer note
type CreateNoteInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	AuthorID   uuid.UUID
	Content    string
}

// maskEmail hides the local part except its first character
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// maskPhone hides everything but the last four digits
func maskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "***"
	}
	return "***-**-" + string(digits[len(digits)-4:])
}
