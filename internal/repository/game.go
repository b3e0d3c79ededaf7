package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
)

const gameKeyPrefix = "game:"

// listLimit caps how many games a player listing returns.
const listLimit = 20

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayer(ctx context.Context, userID string) ([]*entity.Game, error)
	UpdateByID(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	store storage.Store
}

func NewGameRepository(store storage.Store) GameRepository {
	return &dbGame{
		store: store,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.store.Set(ctx, gameKeyPrefix+game.ID, string(gameJSON)); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.store.Get(ctx, gameKeyPrefix+id)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// ListByPlayer - games where userID holds either mark, newest first,
// capped at listLimit.
func (that *dbGame) ListByPlayer(ctx context.Context, userID string) ([]*entity.Game, error) {
	keys, err := that.store.Keys(ctx, gameKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list game keys: %w", err)
	}

	games := make([]*entity.Game, 0, len(keys))
	for _, key := range keys {
		response, err := that.store.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(response), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if game.IsParticipant(userID) {
			games = append(games, &game)
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})

	if len(games) > listLimit {
		games = games[:listLimit]
	}

	return games, nil
}

// UpdateByID - applies mutate to the freshest stored game atomically with
// respect to the document. A mutate error aborts the write untouched.
func (that *dbGame) UpdateByID(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error) {
	var updated *entity.Game

	err := that.store.Update(ctx, gameKeyPrefix+id, func(current string) (string, error) {
		var game entity.Game
		if err := json.Unmarshal([]byte(current), &game); err != nil {
			return "", fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if err := mutate(&game); err != nil {
			return "", err
		}

		gameJSON, err := json.Marshal(&game)
		if err != nil {
			return "", fmt.Errorf("could not marshal game: %w", err)
		}

		updated = &game

		return string(gameJSON), nil
	})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	if err := that.store.Delete(ctx, gameKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}
