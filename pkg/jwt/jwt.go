package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. The auth middleware collapses all of these into
// one generic 401, but callers that need to know (tests, logging) can
// match with errors.Is.
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// Claims carries the identity facts encoded in a bearer token: account
// id, email and avatar URL, plus the registered expiry/issued-at set.
type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	ProfileImg string `json:"profile_img,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies bearer tokens with a process-wide HS256
// secret. The secret is injected at construction time and never read
// from the environment inside a call, so tests can use deterministic
// secrets.
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewManager creates a token manager. ttl is the default validity used
// by GenerateToken; the login flow passes 7 days.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), defaultTTL: ttl}
}

// GenerateToken issues a signed token with the manager's default TTL.
func (m *Manager) GenerateToken(userID, email, profileImg string) (string, error) {
	return m.GenerateTokenWithTTL(userID, email, profileImg, m.defaultTTL)
}

// GenerateTokenWithTTL issues a signed token whose expiry is now+ttl.
// The signature covers both the identity claims and the expiry, so
// neither can be tampered with independently.
func (m *Manager) GenerateTokenWithTTL(userID, email, profileImg string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Email:      email,
		ProfileImg: profileImg,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies signature and expiry and returns the decoded
// claims. Expiry comparison is strict, no clock-skew leeway.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
