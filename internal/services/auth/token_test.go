// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	plaintext, fingerprint, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, plaintext, TokenLength*2) // hex encoding doubles the length
	assert.Len(t, fingerprint, 64)          // sha256 hex digest
	assert.NotEqual(t, plaintext, fingerprint)
	assert.Equal(t, HashToken(plaintext), fingerprint)
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		plaintext, _, err := GenerateToken()
		require.NoError(t, err)
		assert.False(t, seen[plaintext], "duplicate token generated")
		seen[plaintext] = true
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	assert.Equal(t, HashToken("some-token"), HashToken("some-token"))
	assert.NotEqual(t, HashToken("some-token"), HashToken("other-token"))
}
