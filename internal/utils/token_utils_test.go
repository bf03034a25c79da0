package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "bookkeeping-test")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "bookkeeping-test", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, _, err := GenerateJWT("user-1", "secret", time.Hour, "test")
	require.NoError(t, err)
	expired, _, err := GenerateJWT("user-1", "secret", -time.Minute, "test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}
