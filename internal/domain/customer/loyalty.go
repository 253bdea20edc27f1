package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Tier is a discrete loyalty level derived from cumulative points
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Tier thresholds in points. A balance at or above a threshold grants
// the corresponding tier.
const (
	SilverThreshold   = 1000
	GoldThreshold     = 5000
	PlatinumThreshold = 10000
)

// TierForPoints maps a point balance to its tier
func TierForPoints(points int64) Tier {
	switch {
	case points >= PlatinumThreshold:
		return TierPlatinum
	case points >= GoldThreshold:
		return TierGold
	case points >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyTransaction is an append-only ledger entry for a point adjustment.
// BalanceAfter records the balance once the delta was applied, so history
// can be reconstructed without replaying.
type LoyaltyTransaction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Delta        int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	Reason       string    `gorm:"type:varchar(500)"`
	ActorID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}

// NewLoyaltyTransaction records an applied point adjustment
func NewLoyaltyTransaction(tenantID, customerID uuid.UUID, delta, balanceAfter int64, reason string, actorID *uuid.UUID) (*LoyaltyTransaction, error) {
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Point adjustment cannot be zero")
	}
	if balanceAfter < 0 {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Loyalty balance cannot be negative")
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > 500 {
		return nil, shared.NewDomainError("INVALID_REASON", "Reason cannot exceed 500 characters")
	}

	return &LoyaltyTransaction{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CustomerID:   customerID,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		Reason:       reason,
		ActorID:      actorID,
		CreatedAt:    time.Now(),
	}, nil
}
