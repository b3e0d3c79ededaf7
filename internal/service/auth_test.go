package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

func TestAuthService_Tokens(t *testing.T) {
	t.Run("Round-trips the user ID through a token", func(t *testing.T) {
		// Given: an auth service with a signing key
		auth := NewAuthService("secret", time.Hour)

		// When: generating and parsing a token
		token, err := auth.GenerateToken("user-42")
		require.NoError(t, err)

		userID, err := auth.ParseToken(token)

		// Then: the identity survives the round trip
		require.NoError(t, err)
		assert.Equal(t, "user-42", userID)
	})

	t.Run("Rejects a token signed with a different key", func(t *testing.T) {
		auth := NewAuthService("secret", time.Hour)
		other := NewAuthService("different", time.Hour)

		token, err := other.GenerateToken("user-42")
		require.NoError(t, err)

		_, err = auth.ParseToken(token)

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Rejects an expired token", func(t *testing.T) {
		auth := NewAuthService("secret", -time.Minute)

		token, err := auth.GenerateToken("user-42")
		require.NoError(t, err)

		_, err = auth.ParseToken(token)

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		auth := NewAuthService("secret", time.Hour)

		_, err := auth.ParseToken("not-a-token")

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}

func TestAuthService_Passwords(t *testing.T) {
	t.Run("Verifies the original password and nothing else", func(t *testing.T) {
		auth := NewAuthService("secret", time.Hour)

		hash, err := auth.HashPassword("hunter22")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", hash)

		assert.True(t, auth.CheckPassword("hunter22", hash))
		assert.False(t, auth.CheckPassword("hunter23", hash))
	})
}
