package apperror

import "errors"

// Kind classifies an error for transport-level mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid move position")
	ErrGameFull       = errors.New("game is full")
	ErrNotMultiplayer = errors.New("this is not a multiplayer game")
	ErrOwnGame        = errors.New("cannot join your own game")
	ErrNotParticipant = errors.New("not a participant of this game")
	ErrNotOwner       = errors.New("only the game creator may do this")

	ErrGameNotFound = errors.New("game not found")
	ErrUserNotFound = errors.New("user not found")

	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("token is not valid")

	ErrInvalidUsername = errors.New("username must be 3-20 characters of letters, numbers, and underscores")
	ErrInvalidEmail    = errors.New("please enter a valid email")
	ErrInvalidPassword = errors.New("password must be at least 6 characters long")
)

// KindOf - resolves the taxonomy class of err; unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidCell),
		errors.Is(err, ErrNotMultiplayer),
		errors.Is(err, ErrOwnGame),
		errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrUserExists):
		return KindValidation
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return KindUnauthorized
	case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrNotOwner):
		return KindForbidden
	case errors.Is(err, ErrGameNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrGameFinished),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrCellOccupied),
		errors.Is(err, ErrGameFull):
		return KindConflict
	default:
		return KindInternal
	}
}
