package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// AdminUserRepository defines persistence operations for admin users
type AdminUserRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*AdminUser, error)
	FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*AdminUser, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*AdminUser, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AdminUser, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, admin *AdminUser) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SessionRepository defines persistence operations for sessions
type SessionRepository interface {
	FindByToken(ctx context.Context, token string) (*Session, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
