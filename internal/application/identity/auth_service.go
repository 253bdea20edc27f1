package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// AttemptStore counts failed login attempts within a rolling window.
// Implemented on redis so lockouts survive restarts and apply across
// replicas.
type AttemptStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// AuthService handles admin console login and logout
type AuthService struct {
	admins   identity.AdminUserRepository
	policies settings.SecurityPolicyRepository
	sessions *SessionService
	attempts AttemptStore
	logger   *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	admins identity.AdminUserRepository,
	policies settings.SecurityPolicyRepository,
	sessions *SessionService,
	attempts AttemptStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admins:   admins,
		policies: policies,
		sessions: sessions,
		attempts: attempts,
		logger:   logger,
	}
}

func attemptKey(tenantID uuid.UUID, email string) string {
	return fmt.Sprintf("login_attempts:%s:%s", tenantID, strings.ToLower(email))
}

// policyFor loads the tenant's security policy, falling back to the
// default policy when none was configured yet.
func (s *AuthService) policyFor(ctx context.Context, tenantID uuid.UUID) *settings.SecurityPolicy {
	policy, err := s.policies.FindByTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to load security policy, using defaults", zap.Error(err))
		}
		return settings.DefaultSecurityPolicy(tenantID)
	}
	return policy
}

// Login authenticates an admin and mints a session
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	s.logger.Info("Admin login attempt", zap.String("email", email), zap.String("ip", input.IP))

	policy := s.policyFor(ctx, input.TenantID)
	if !policy.AllowsIP(input.IP) {
		s.logger.Warn("Login from address outside allowlist", zap.String("ip", input.IP))
		return nil, shared.NewDomainError("IP_NOT_ALLOWED", "Login is not permitted from this address")
	}

	key := attemptKey(input.TenantID, email)
	lockWindow := time.Duration(policy.LockoutMinutes) * time.Minute
	count, err := s.attempts.Count(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read login attempt counter", zap.Error(err))
	}
	if count >= int64(policy.MaxLoginAttempts) {
		s.logger.Warn("Login attempt on locked account", zap.String("email", email))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed attempts. Please try again later")
	}

	admin, err := s.admins.FindByEmail(ctx, input.TenantID, email)
	if err != nil {
		s.recordFailure(ctx, key, lockWindow, email)
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !admin.Active {
		s.logger.Warn("Login attempt for deactivated admin", zap.String("email", email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !admin.CheckPassword(input.Password) {
		attempts := s.recordFailure(ctx, key, lockWindow, email)
		if attempts >= int64(policy.MaxLoginAttempts) {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if err := s.attempts.Reset(ctx, key); err != nil {
		s.logger.Warn("Failed to reset login attempt counter", zap.Error(err))
	}

	now := time.Now()
	admin.RecordLogin(now)
	if err := s.admins.Save(ctx, admin); err != nil {
		s.logger.Warn("Failed to record admin login time", zap.Error(err))
	}

	_, bearer, err := s.sessions.Create(ctx, admin.UserID, admin.TenantID, input.IP, input.UserAgent, policy.SessionDuration())
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	s.logger.Info("Admin logged in",
		zap.String("email", email),
		zap.String("role", string(admin.Role)))

	return &LoginResult{
		Token:     bearer,
		ExpiresAt: now.Add(policy.SessionDuration()),
		Admin:     NewAdminInfo(admin),
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string, window time.Duration, email string) int64 {
	attempts, err := s.attempts.Increment(ctx, key, window)
	if err != nil {
		s.logger.Warn("Failed to record login failure", zap.Error(err))
		return 0
	}
	s.logger.Warn("Failed login attempt",
		zap.String("email", email),
		zap.Int64("attempts", attempts))
	return attempts
}

// Logout revokes the session behind the bearer token
func (s *AuthService) Logout(ctx context.Context, bearer string) error {
	return s.sessions.Revoke(ctx, bearer)
}
