package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormSessionRepository implements identity.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByToken finds a session by its opaque token
func (r *GormSessionRepository) FindByToken(ctx context.Context, token string) (*identity.Session, error) {
	var session identity.Session
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByUserID returns every session of a user, newest first
func (r *GormSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]identity.Session, error) {
	var sessions []identity.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save persists the session
func (r *GormSessionRepository) Save(ctx context.Context, session *identity.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete removes a session by token
func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&identity.Session{}).Error
}

// DeleteByUserID removes every session of a user
func (r *GormSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&identity.Session{}).Error
}

// DeleteExpired removes sessions past their expiry and reports how many
func (r *GormSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&identity.Session{})
	return result.RowsAffected, result.Error
}
