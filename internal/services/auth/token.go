// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// TokenLength is the number of random bytes for verification and reset tokens.
const TokenLength = 32

// GenerateToken generates a new single-use token.
// Returns (plaintext token, SHA256 fingerprint for storage, error). Only the
// fingerprint is persisted, so a leaked database cannot be used to forge
// valid tokens.
func GenerateToken() (string, string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plaintext := hex.EncodeToString(bytes)
	return plaintext, HashToken(plaintext), nil
}

// HashToken computes the SHA256 fingerprint of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
