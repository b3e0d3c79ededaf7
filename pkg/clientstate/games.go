package clientstate

import "github.com/rocketscienceinc/tictactoe-web/pkg/apiclient"

// GamesState - the game-list container: the player's games, the game being
// viewed, and the last error shown to the user.
type GamesState struct {
	Games  []*apiclient.Game
	Active *apiclient.Game
	Err    string
}

type GamesAction interface {
	isGamesAction()
}

type GamesLoaded struct {
	Games []*apiclient.Game
}

type ActiveGameSet struct {
	Game *apiclient.Game
}

// GameUpdated - an authoritative server response replacing the stored game.
type GameUpdated struct {
	Game *apiclient.Game
}

type GameAdded struct {
	Game *apiclient.Game
}

type GameRemoved struct {
	ID string
}

type GamesErrorSet struct {
	Message string
}

type GamesErrorCleared struct{}

func (GamesLoaded) isGamesAction()       {}
func (ActiveGameSet) isGamesAction()     {}
func (GameUpdated) isGamesAction()       {}
func (GameAdded) isGamesAction()         {}
func (GameRemoved) isGamesAction()       {}
func (GamesErrorSet) isGamesAction()     {}
func (GamesErrorCleared) isGamesAction() {}

// ReduceGames - the game-list transition function.
func ReduceGames(state GamesState, action GamesAction) GamesState {
	switch action := action.(type) {
	case GamesLoaded:
		next := state
		next.Games = action.Games
		next.Err = ""
		return next
	case ActiveGameSet:
		next := state
		next.Active = action.Game
		next.Err = ""
		return next
	case GameUpdated:
		next := state
		next.Games = replaceGame(state.Games, action.Game)
		if state.Active != nil && state.Active.ID == action.Game.ID {
			next.Active = action.Game
		}
		return next
	case GameAdded:
		next := state
		next.Games = append([]*apiclient.Game{action.Game}, state.Games...)
		return next
	case GameRemoved:
		next := state
		games := make([]*apiclient.Game, 0, len(state.Games))
		for _, game := range state.Games {
			if game.ID != action.ID {
				games = append(games, game)
			}
		}
		next.Games = games
		if state.Active != nil && state.Active.ID == action.ID {
			next.Active = nil
		}
		return next
	case GamesErrorSet:
		next := state
		next.Err = action.Message
		return next
	case GamesErrorCleared:
		next := state
		next.Err = ""
		return next
	default:
		return state
	}
}

func replaceGame(games []*apiclient.Game, updated *apiclient.Game) []*apiclient.Game {
	next := make([]*apiclient.Game, len(games))
	for i, game := range games {
		if game.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = game
		}
	}

	return next
}
