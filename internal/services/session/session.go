// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package session issues and verifies stateless signed session tokens.
// There is no server-side session table; logout is a client-side token
// discard. A token is valid iff its signature checks out and it has not
// expired.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted signing secret length in bytes.
const MinSecretLength = 32

// ErrInvalidSession covers missing, malformed, tampered and expired tokens.
// Callers receive one error for all of these; the distinction is logged, not
// exposed.
var ErrInvalidSession = errors.New("invalid or expired session token")

// Claims binds the token to a user id via the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with HMAC-SHA256.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager. The secret must be at least
// MinSecretLength bytes.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed token with subject, issued-at and expiry claims.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the token's subject.
// Verification is a pure computation with no I/O and is safe for any number
// of concurrent callers.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
