package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/engine"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// GameDetail - a game together with its resolved participants, for
// responses that embed player usernames.
type GameDetail struct {
	Game    *entity.Game
	PlayerX *entity.User
	PlayerO *entity.User
}

type GameService interface {
	Create(ctx context.Context, userID, gameType string) (*GameDetail, error)
	List(ctx context.Context, userID string) ([]*GameDetail, error)
	Get(ctx context.Context, userID, gameID string) (*GameDetail, error)
	Move(ctx context.Context, userID, gameID string, row, col int) (*GameDetail, error)
	Join(ctx context.Context, userID, gameID string) (*GameDetail, error)
	Delete(ctx context.Context, userID, gameID string) error
}

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayer(ctx context.Context, userID string) ([]*entity.Game, error)
	UpdateByID(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepoDep
	userRepo userRepoDep
}

func NewGameService(logger *slog.Logger, gameRepo gameRepoDep, userRepo userRepoDep) GameService {
	return &gameService{
		logger:   logger.With("component", "game-service"),
		gameRepo: gameRepo,
		userRepo: userRepo,
	}
}

func (that *gameService) Create(ctx context.Context, userID, gameType string) (*GameDetail, error) {
	if gameType != entity.SingleType && gameType != entity.MultiplayerType {
		gameType = entity.SingleType
	}

	game := entity.NewGame(uuid.NewString(), userID, gameType)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return that.resolvePlayers(ctx, game)
}

func (that *gameService) List(ctx context.Context, userID string) ([]*GameDetail, error) {
	games, err := that.gameRepo.ListByPlayer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	details := make([]*GameDetail, 0, len(games))
	for _, game := range games {
		detail, err := that.resolvePlayers(ctx, game)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}

func (that *gameService) Get(ctx context.Context, userID, gameID string) (*GameDetail, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.IsParticipant(userID) {
		return nil, apperror.ErrNotParticipant
	}

	return that.resolvePlayers(ctx, game)
}

// Move - applies the caller's move through an atomic document update, so
// turn legality is checked against the freshest stored state. When the move
// completes the game, participant statistics are credited exactly once,
// guarded by the completion transition firing exactly once.
func (that *gameService) Move(ctx context.Context, userID, gameID string, row, col int) (*GameDetail, error) {
	var completed bool

	game, err := that.gameRepo.UpdateByID(ctx, gameID, func(game *entity.Game) error {
		mark, ok := game.MarkOf(userID)
		if !ok {
			return apperror.ErrNotParticipant
		}

		wasComplete := game.IsComplete
		if err := engine.Apply(game, row, col, mark); err != nil {
			return err
		}

		completed = !wasComplete && game.IsComplete

		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		that.applyOutcome(ctx, game)
	}

	return that.resolvePlayers(ctx, game)
}

// Join - the caller becomes the O holder. Run as an atomic update so two
// concurrent joiners cannot both take the seat.
func (that *gameService) Join(ctx context.Context, userID, gameID string) (*GameDetail, error) {
	game, err := that.gameRepo.UpdateByID(ctx, gameID, func(game *entity.Game) error {
		if !game.IsMultiplayer() {
			return apperror.ErrNotMultiplayer
		}
		if game.HasPlayerO() {
			return apperror.ErrGameFull
		}
		if game.PlayerXID == userID {
			return apperror.ErrOwnGame
		}

		game.PlayerOID = userID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return that.resolvePlayers(ctx, game)
}

func (that *gameService) Delete(ctx context.Context, userID, gameID string) error {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.PlayerXID != userID {
		return apperror.ErrNotOwner
	}

	if err = that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// applyOutcome - credits cumulative counters for every participant. The
// writes are best-effort and separate from the game-completion write: a
// crash in between loses a stat update, which is accepted and logged
// rather than hidden behind a transaction the store does not have.
func (that *gameService) applyOutcome(ctx context.Context, game *entity.Game) {
	results := make(map[string]string)

	switch game.Winner {
	case entity.MarkX:
		results[game.PlayerXID] = "win"
		if game.HasPlayerO() {
			results[game.PlayerOID] = "loss"
		}
	case entity.MarkO:
		results[game.PlayerXID] = "loss"
		if game.HasPlayerO() {
			results[game.PlayerOID] = "win"
		}
	case entity.WinnerDraw:
		for _, id := range game.ParticipantIDs() {
			results[id] = "draw"
		}
	}

	for userID, result := range results {
		_, err := that.userRepo.UpdateByID(ctx, userID, func(user *entity.User) error {
			user.Stats.GamesPlayed++
			switch result {
			case "win":
				user.Stats.GamesWon++
			case "loss":
				user.Stats.GamesLost++
			case "draw":
				user.Stats.GamesDrawn++
			}
			return nil
		})
		if err != nil {
			that.logger.Error("failed to update player stats", "user_id", userID, "game_id", game.ID, "error", err)
		}
	}
}

func (that *gameService) resolvePlayers(ctx context.Context, game *entity.Game) (*GameDetail, error) {
	detail := &GameDetail{Game: game}

	playerX, err := that.userRepo.GetByID(ctx, game.PlayerXID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player X: %w", err)
	}
	detail.PlayerX = playerX.Public()

	if game.HasPlayerO() {
		playerO, err := that.userRepo.GetByID(ctx, game.PlayerOID)
		if err != nil {
			return nil, fmt.Errorf("failed to get player O: %w", err)
		}
		detail.PlayerO = playerO.Public()
	}

	return detail, nil
}
