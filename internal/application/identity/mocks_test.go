package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockSessionRepository is a mock implementation of identity.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*identity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]identity.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *identity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdminUserRepository is a mock implementation of identity.AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.AdminUser, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*identity.AdminUser, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.AdminUser, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.AdminUser, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminUserRepository) Save(ctx context.Context, admin *identity.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminUserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockSessionCache is a mock implementation of SessionCache
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Get(ctx context.Context, token string) (*ResolvedSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ResolvedSession), args.Error(1)
}

func (m *MockSessionCache) Set(ctx context.Context, token string, session *ResolvedSession, ttl time.Duration) error {
	args := m.Called(ctx, token, session, ttl)
	return args.Error(0)
}

func (m *MockSessionCache) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockTokenVerifier is a mock implementation of TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(ctx context.Context, sessionToken string, userID, tenantID uuid.UUID, expiresAt time.Time) (string, error) {
	args := m.Called(ctx, sessionToken, userID, tenantID, expiresAt)
	return args.String(0), args.Error(1)
}

// MockAttemptStore is a mock implementation of AttemptStore
type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptStore) Count(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptStore) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockSecurityPolicyRepository is a mock implementation of settings.SecurityPolicyRepository
type MockSecurityPolicyRepository struct {
	mock.Mock
}

func (m *MockSecurityPolicyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.SecurityPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SecurityPolicy), args.Error(1)
}

func (m *MockSecurityPolicyRepository) Save(ctx context.Context, p *settings.SecurityPolicy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
