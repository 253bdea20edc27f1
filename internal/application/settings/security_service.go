package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// SecurityPolicyService manages the tenant's authentication policy
type SecurityPolicyService struct {
	policies settings.SecurityPolicyRepository
	logger   *zap.Logger
}

// NewSecurityPolicyService creates a new security policy service
func NewSecurityPolicyService(policies settings.SecurityPolicyRepository, logger *zap.Logger) *SecurityPolicyService {
	return &SecurityPolicyService{policies: policies, logger: logger}
}

// Get returns the tenant's policy, materializing the default if none
// has been saved yet.
func (s *SecurityPolicyService) Get(ctx context.Context, tenantID uuid.UUID) (*settings.SecurityPolicy, error) {
	policy, err := s.policies.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return settings.DefaultSecurityPolicy(tenantID), nil
		}
		return nil, err
	}
	return policy, nil
}

// UpdatePolicyInput carries the editable policy fields
type UpdatePolicyInput struct {
	MinPasswordLength int
	RequireMFA        bool
	SessionLifetime   time.Duration
	MaxLoginAttempts  int
	LockoutMinutes    int
	IPAllowlist       []string
}

// Update validates and persists the policy
func (s *SecurityPolicyService) Update(ctx context.Context, tenantID uuid.UUID, input UpdatePolicyInput) (*settings.SecurityPolicy, error) {
	policy, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := policy.Update(input.MinPasswordLength, input.RequireMFA, input.SessionLifetime, input.MaxLoginAttempts, input.LockoutMinutes); err != nil {
		return nil, err
	}
	policy.IPAllowlist = input.IPAllowlist

	if err := s.policies.Save(ctx, policy); err != nil {
		return nil, err
	}
	s.logger.Info("Security policy updated",
		zap.Duration("session_lifetime", policy.SessionDuration()),
		zap.Int("max_login_attempts", policy.MaxLoginAttempts))
	return policy, nil
}
