package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := Hash("s3cret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hash), "argon2id$v=19$"))

	require.NoError(t, VerifyPassword(string(hash), "s3cret-password"))
	assert.Error(t, VerifyPassword(string(hash), "wrong-password"))
}

func TestHashProducesUniqueSalts(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, string(a), string(b))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	assert.Error(t, VerifyPassword("not-a-hash", "password"))
	assert.Error(t, VerifyPassword("a$b$c$d$e$f", "password"))
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("token", "token"))
	assert.False(t, SecureCompare("token", "Token"))
	assert.False(t, SecureCompare("token", "token2"))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "/")
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "=")
}
