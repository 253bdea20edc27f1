package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-at-least-32-characters-long",
		Issuer: "marketplace-test",
	})
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sessionToken := uuid.New().String()

	bearer, err := svc.Issue(ctx, sessionToken, uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, bearer)

	got, err := svc.Verify(ctx, bearer)
	require.NoError(t, err)
	assert.Equal(t, sessionToken, got)
}

func TestJWTService_Verify(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("rejects expired token", func(t *testing.T) {
		bearer, err := svc.Issue(ctx, uuid.New().String(), uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = svc.Verify(ctx, bearer)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret: "another-secret-also-32-characters-xx",
			Issuer: "marketplace-test",
		})
		bearer, err := other.Issue(ctx, uuid.New().String(), uuid.New(), uuid.New(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = svc.Verify(ctx, bearer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.Verify(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
