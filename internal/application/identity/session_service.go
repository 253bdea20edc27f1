package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// SessionCacheTTL is how long a resolved session stays in the cache
// before the next lookup goes back to the verifier and the store.
const SessionCacheTTL = 5 * time.Minute

// SessionCache is the short-TTL lookup cache in front of the session
// store. Get returns (nil, nil) on a miss.
type SessionCache interface {
	Get(ctx context.Context, token string) (*ResolvedSession, error)
	Set(ctx context.Context, token string, session *ResolvedSession, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// TokenVerifier validates a bearer token and extracts the session
// reference it carries. Implemented by the JWT service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (sessionToken string, err error)
}

// TokenIssuer signs a bearer token wrapping a session reference
type TokenIssuer interface {
	Issue(ctx context.Context, sessionToken string, userID, tenantID uuid.UUID, expiresAt time.Time) (string, error)
}

// SessionService resolves bearer tokens into sessions, cache-first
type SessionService struct {
	sessions identity.SessionRepository
	cache    SessionCache
	verifier TokenVerifier
	issuer   TokenIssuer
	lifetime time.Duration
	logger   *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions identity.SessionRepository,
	cache SessionCache,
	verifier TokenVerifier,
	issuer TokenIssuer,
	lifetime time.Duration,
	logger *zap.Logger,
) *SessionService {
	if lifetime <= 0 {
		lifetime = 7 * 24 * time.Hour
	}
	return &SessionService{
		sessions: sessions,
		cache:    cache,
		verifier: verifier,
		issuer:   issuer,
		lifetime: lifetime,
		logger:   logger,
	}
}

// Create mints a session for the user and returns the signed bearer
// token to set as the auth cookie.
func (s *SessionService) Create(ctx context.Context, userID, tenantID uuid.UUID, ip, userAgent string, lifetime time.Duration) (*ResolvedSession, string, error) {
	if lifetime <= 0 {
		lifetime = s.lifetime
	}
	session, err := identity.NewSession(userID, tenantID, ip, userAgent, lifetime)
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("Failed to persist session", zap.Error(err))
		return nil, "", err
	}

	bearer, err := s.issuer.Issue(ctx, session.Token, userID, tenantID, session.ExpiresAt)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, "", err
	}

	resolved := &ResolvedSession{
		Token:     session.Token,
		UserID:    session.UserID,
		TenantID:  session.TenantID,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.Set(ctx, bearer, resolved, SessionCacheTTL); err != nil {
		s.logger.Warn("Failed to cache new session", zap.Error(err))
	}
	return resolved, bearer, nil
}

// Resolve turns a bearer token into a session. A cache hit answers
// without touching the verifier or the store; a miss verifies the
// token, loads the session, opportunistically renews it near expiry
// and repopulates the cache.
func (s *SessionService) Resolve(ctx context.Context, bearer string) (*ResolvedSession, error) {
	if bearer == "" {
		return nil, shared.NewDomainError("NO_SESSION", "No session token provided")
	}

	cached, err := s.cache.Get(ctx, bearer)
	if err != nil {
		s.logger.Warn("Session cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	sessionToken, err := s.verifier.Verify(ctx, bearer)
	if err != nil {
		return nil, shared.NewDomainError("NO_SESSION", "Session token is invalid")
	}

	session, err := s.sessions.FindByToken(ctx, sessionToken)
	if err != nil {
		return nil, shared.NewDomainError("NO_SESSION", "Session not found")
	}

	now := time.Now()
	if session.IsExpired(now) {
		if err := s.sessions.Delete(ctx, session.Token); err != nil {
			s.logger.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, shared.NewDomainError("NO_SESSION", "Session has expired")
	}

	if session.ShouldRenew(now) {
		session.Renew(now, s.lifetime)
		if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.Warn("Failed to renew session", zap.String("token", session.Token), zap.Error(err))
		}
	}

	resolved := &ResolvedSession{
		Token:     session.Token,
		UserID:    session.UserID,
		TenantID:  session.TenantID,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.Set(ctx, bearer, resolved, SessionCacheTTL); err != nil {
		s.logger.Warn("Failed to repopulate session cache", zap.Error(err))
	}
	return resolved, nil
}

// Revoke deletes a session by its bearer token and drops the cache entry
func (s *SessionService) Revoke(ctx context.Context, bearer string) error {
	sessionToken, err := s.verifier.Verify(ctx, bearer)
	if err != nil {
		return shared.NewDomainError("NO_SESSION", "Session token is invalid")
	}
	if err := s.cache.Delete(ctx, bearer); err != nil {
		s.logger.Warn("Failed to evict session cache entry", zap.Error(err))
	}
	return s.sessions.Delete(ctx, sessionToken)
}

// RevokeSessionToken deletes a session by its raw store token. Used by
// the admin sessions panel where the bearer is not available.
func (s *SessionService) RevokeSessionToken(ctx context.Context, sessionToken string) error {
	return s.sessions.Delete(ctx, sessionToken)
}

// RevokeAllForUser deletes every session belonging to the user
func (s *SessionService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteByUserID(ctx, userID)
}

// ListForUser returns the user's active sessions
func (s *SessionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]SessionInfo, error) {
	sessions, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	infos := make([]SessionInfo, 0, len(sessions))
	for i := range sessions {
		if sessions[i].IsExpired(now) {
			continue
		}
		infos = append(infos, SessionInfo{
			Token:     sessions[i].Token,
			UserID:    sessions[i].UserID,
			IP:        sessions[i].IP,
			UserAgent: sessions[i].UserAgent,
			CreatedAt: sessions[i].CreatedAt,
			ExpiresAt: sessions[i].ExpiresAt,
		})
	}
	return infos, nil
}

// PurgeExpired removes expired session rows. Run periodically from the
// server's background loop.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Purged expired sessions", zap.Int64("count", n))
	}
	return n, nil
}
