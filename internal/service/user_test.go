package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
)

func newUserService(t *testing.T) UserService {
	t.Helper()

	auth := NewAuthService("test-secret", time.Hour)

	return NewUserService(repository.NewUserRepository(storage.NewMemoryStorage()), auth)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Registers a valid user with hashed credentials and zero stats", func(t *testing.T) {
		users := newUserService(t)

		// When: registering a well-formed user
		user, err := users.Register(ctx, "alice_1", "Alice@Example.com", "secret1")

		// Then: the user is stored with a lowercased email and no counters
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice_1", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.Zero(t, user.Stats.GamesPlayed)
	})

	t.Run("Rejects malformed usernames", func(t *testing.T) {
		users := newUserService(t)

		for _, username := range []string{"ab", "this_name_is_way_too_long_xx", "bad name", "bad-name!"} {
			_, err := users.Register(ctx, username, "a@b.co", "secret1")
			assert.ErrorIs(t, err, apperror.ErrInvalidUsername)
		}
	})

	t.Run("Rejects invalid emails and short passwords", func(t *testing.T) {
		users := newUserService(t)

		_, err := users.Register(ctx, "alice", "not-an-email", "secret1")
		assert.ErrorIs(t, err, apperror.ErrInvalidEmail)

		_, err = users.Register(ctx, "alice", "a@b.co", "short")
		assert.ErrorIs(t, err, apperror.ErrInvalidPassword)
	})

	t.Run("Rejects a taken username or email", func(t *testing.T) {
		users := newUserService(t)
		_, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = users.Register(ctx, "alice", "other@example.com", "secret1")
		assert.ErrorIs(t, err, apperror.ErrUserExists)

		_, err = users.Register(ctx, "bob", "alice@example.com", "secret1")
		assert.ErrorIs(t, err, apperror.ErrUserExists)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts username or email with the right password", func(t *testing.T) {
		users := newUserService(t)
		registered, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		byName, err := users.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, byName.ID)

		byEmail, err := users.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, byEmail.ID)
	})

	t.Run("Rejects a wrong password and an unknown login the same way", func(t *testing.T) {
		users := newUserService(t)
		_, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = users.Login(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

		_, err = users.Login(ctx, "nobody", "secret1")
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates provided fields and keeps the rest", func(t *testing.T) {
		users := newUserService(t)
		registered, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		// When: changing only the username
		updated, err := users.UpdateProfile(ctx, registered.ID, "alice_new", "")

		// Then: the email is untouched
		require.NoError(t, err)
		assert.Equal(t, "alice_new", updated.Username)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("Allows keeping your own username", func(t *testing.T) {
		users := newUserService(t)
		registered, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = users.UpdateProfile(ctx, registered.ID, "alice", "new@example.com")

		assert.NoError(t, err)
	})

	t.Run("Rejects another user's username", func(t *testing.T) {
		users := newUserService(t)
		_, err := users.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		bob, err := users.Register(ctx, "bob", "bob@example.com", "secret1")
		require.NoError(t, err)

		_, err = users.UpdateProfile(ctx, bob.ID, "alice", "")

		assert.ErrorIs(t, err, apperror.ErrUserExists)
	})
}
