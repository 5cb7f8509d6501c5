package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_GenerateTokens(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 15*time.Minute, 720*time.Hour)

	access, refresh, err := tg.GenerateTokens(42)

	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 15*time.Minute, 720*time.Hour)

	t.Run("valid token round trip", func(t *testing.T) {
		access, _, err := tg.GenerateTokens(42)
		require.NoError(t, err)

		userID, err := tg.ValidateAccessToken(access)

		require.NoError(t, err)
		assert.Equal(t, 42, userID)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		_, refresh, err := tg.GenerateTokens(42)
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(refresh)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an access token")
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewTokenGenerator("other-secret", 15*time.Minute, 720*time.Hour)
		access, _, err := other.GenerateTokens(42)
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(access)

		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := NewTokenGenerator("test-secret", -time.Minute, 720*time.Hour)
		access, _, err := expired.GenerateTokens(42)
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(access)

		assert.Error(t, err)
	})

	t.Run("malformed token rejected", func(t *testing.T) {
		_, err := tg.ValidateAccessToken("not-a-token")

		assert.Error(t, err)
	})

	t.Run("wrong signing method rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": 42,
			"type":    "access",
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(signed)

		assert.Error(t, err)
	})
}
