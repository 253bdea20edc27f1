package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSession   = errors.New("missing session reference in claims")
)

// Claims are the custom JWT claims of a session bearer token. The
// opaque session token travels in the sid claim; the signature proves
// the bearer came from us before any store lookup happens.
type Claims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sid"`
	TenantID     string `json:"tenant_id"`
	UserID       string `json:"user_id"`
}

// JWTService signs and verifies session bearer tokens. It implements
// the identity application's TokenIssuer and TokenVerifier.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Issue signs a bearer token wrapping the session reference. The
// bearer expires with the session it points at.
func (s *JWTService) Issue(ctx context.Context, sessionToken string, userID, tenantID uuid.UUID, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionToken: sessionToken,
		TenantID:     tenantID.String(),
		UserID:       userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a bearer token and returns the session reference it carries
func (s *JWTService) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return "", ErrTokenNotYetValid
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidClaims
	}
	if claims.SessionToken == "" {
		return "", ErrMissingSession
	}

	return claims.SessionToken, nil
}
