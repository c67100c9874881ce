// internal/app/system/auth/auth.go

// Package auth issues and validates the signed tokens that identify API
// callers, and provides the middleware that injects the caller into
// request context.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
)

// Claims is the token payload: who the caller is and what they may do.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager creates and validates signed tokens. Tokens are HMAC-SHA256
// signed and stateless; revocation before expiry is not supported.
type Manager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewManager builds a token manager. The secret must be non-empty;
// shorter than 32 bytes is rejected to keep HS256 keys honest.
func NewManager(secret string, accessExpiry, refreshExpiry time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("auth: token secret must be at least 32 bytes")
	}
	if accessExpiry <= 0 || refreshExpiry <= 0 {
		return nil, fmt.Errorf("auth: token expiries must be positive")
	}
	return &Manager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

// AccessExpiry reports the configured access-token lifetime.
func (m *Manager) AccessExpiry() time.Duration { return m.accessExpiry }

// RefreshExpiry reports the configured refresh-token lifetime.
func (m *Manager) RefreshExpiry() time.Duration { return m.refreshExpiry }

// IssueAccess creates a short-lived access token for the given user.
func (m *Manager) IssueAccess(userID, email, role string) (string, error) {
	return m.issue(userID, email, role, m.accessExpiry)
}

// IssueRefresh creates a longer-lived refresh token. When extended is
// true ("remember me") the lifetime is stretched to roughly a week.
func (m *Manager) IssueRefresh(userID, email, role string, extended bool) (string, error) {
	expiry := m.refreshExpiry
	if extended {
		expiry = 7 * 24 * time.Hour
	}
	return m.issue(userID, email, role, expiry)
}

func (m *Manager) issue(userID, email, role string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
// Expired, tampered, or foreign-algorithm tokens are rejected as
// Unauthorized.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "Invalid or expired token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "Invalid or expired token")
	}
	return claims, nil
}
