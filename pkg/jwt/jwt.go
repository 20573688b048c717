package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"asso-portal/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the session payload checked on every request:
// user id, role and the active flag.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager creates a token manager from the auth configuration.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken signs a short-lived access token.
func (m *Manager) GenerateAccessToken(userID, role string, isActive bool) (string, error) {
	return m.generate(userID, role, isActive, "access", m.accessTokenTTL)
}

// GenerateRefreshToken signs a long-lived refresh token.
func (m *Manager) GenerateRefreshToken(userID, role string, isActive bool) (string, error) {
	return m.generate(userID, role, isActive, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(userID, role string, isActive bool, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		IsActive:  isActive,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "asso-portal",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies a token and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// AccessTokenTTL exposes the configured access token lifetime.
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}
