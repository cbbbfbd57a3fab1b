package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key-0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("access token", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(42, "ana@rentaldesk.test", "MANAGER")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(42), claims.UserID)
		assert.Equal(t, "ana@rentaldesk.test", claims.Email)
		assert.Equal(t, "MANAGER", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("refresh token carries no role", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(42, "ana@rentaldesk.test")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
		assert.Empty(t, claims.Role)
	})
}

func TestTokenValidationFailures(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("a-completely-different-secret-value-zz", time.Hour, 24*time.Hour)
		token, err := other.GenerateAccessToken(1, "x@y.test", "STAFF")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewTokenManager(testSecret, -time.Minute, 24*time.Hour)
		token, err := short.GenerateAccessToken(1, "x@y.test", "STAFF")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
