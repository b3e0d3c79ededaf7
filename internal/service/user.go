package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const minPasswordLength = 6

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Login(ctx context.Context, login, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*entity.User, error)
}

type userRepoDep interface {
	CreateOrUpdate(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, mutate func(*entity.User) error) (*entity.User, error)
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
}

type userService struct {
	userRepo userRepoDep
	hasher   passwordHasher
}

func NewUserService(userRepo userRepoDep, hasher passwordHasher) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Register - validates the identity fields, enforces username and email
// uniqueness, and stores the user with a hashed credential.
func (that *userService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, apperror.ErrInvalidPassword
	}

	if err := that.ensureUnique(ctx, username, email, ""); err != nil {
		return nil, err
	}

	hash, err := that.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err = that.userRepo.CreateOrUpdate(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

// Login - accepts either the username or the email as the login.
func (that *userService) Login(ctx context.Context, login, password string) (*entity.User, error) {
	user, err := that.userRepo.GetByUsername(ctx, login)
	if errors.Is(err, apperror.ErrUserNotFound) {
		user, err = that.userRepo.GetByEmail(ctx, login)
	}
	if errors.Is(err, apperror.ErrUserNotFound) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !that.hasher.CheckPassword(password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	return user, nil
}

func (that *userService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := that.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateProfile - updates username and/or email; empty fields keep their
// current value. Uniqueness is re-checked excluding the user itself.
func (that *userService) UpdateProfile(ctx context.Context, id, username, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if username != "" {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	if err := that.ensureUnique(ctx, username, email, id); err != nil {
		return nil, err
	}

	user, err := that.userRepo.UpdateByID(ctx, id, func(user *entity.User) error {
		if username != "" {
			user.Username = username
		}
		if email != "" {
			user.Email = email
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (that *userService) ensureUnique(ctx context.Context, username, email, selfID string) error {
	if username != "" {
		existing, err := that.userRepo.GetByUsername(ctx, username)
		if err != nil && !errors.Is(err, apperror.ErrUserNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperror.ErrUserExists
		}
	}

	if email != "" {
		existing, err := that.userRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, apperror.ErrUserNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperror.ErrUserExists
		}
	}

	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return apperror.ErrInvalidUsername
	}

	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperror.ErrInvalidEmail
	}

	return nil
}
