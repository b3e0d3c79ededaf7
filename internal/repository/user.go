package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
)

const userKeyPrefix = "user:"

type UserRepository interface {
	CreateOrUpdate(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, mutate func(*entity.User) error) (*entity.User, error)
}

type dbUser struct {
	store storage.Store
}

func NewUserRepository(store storage.Store) UserRepository {
	return &dbUser{
		store: store,
	}
}

func (that *dbUser) CreateOrUpdate(ctx context.Context, user *entity.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err = that.store.Set(ctx, userKeyPrefix+user.ID, string(userJSON)); err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}

	return nil
}

func (that *dbUser) GetByID(ctx context.Context, id string) (*entity.User, error) {
	response, err := that.store.Get(ctx, userKeyPrefix+id)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	var existingUser entity.User
	if err = json.Unmarshal([]byte(response), &existingUser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &existingUser, nil
}

func (that *dbUser) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return that.find(ctx, func(user *entity.User) bool {
		return user.Username == username
	})
}

func (that *dbUser) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(email)

	return that.find(ctx, func(user *entity.User) bool {
		return user.Email == email
	})
}

func (that *dbUser) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	keys, err := that.store.Keys(ctx, userKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list user keys: %w", err)
	}

	for _, key := range keys {
		response, err := that.store.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		var user entity.User
		if err = json.Unmarshal([]byte(response), &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user: %w", err)
		}

		if match(&user) {
			return &user, nil
		}
	}

	return nil, apperror.ErrUserNotFound
}

// UpdateByID - applies mutate against the freshest stored user, so two
// stat credits for different games cannot overwrite each other.
func (that *dbUser) UpdateByID(ctx context.Context, id string, mutate func(*entity.User) error) (*entity.User, error) {
	var updated *entity.User

	err := that.store.Update(ctx, userKeyPrefix+id, func(current string) (string, error) {
		var user entity.User
		if err := json.Unmarshal([]byte(current), &user); err != nil {
			return "", fmt.Errorf("failed to unmarshal user: %w", err)
		}

		if err := mutate(&user); err != nil {
			return "", err
		}

		userJSON, err := json.Marshal(&user)
		if err != nil {
			return "", fmt.Errorf("failed to marshal user: %w", err)
		}

		updated = &user

		return string(userJSON), nil
	})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}
