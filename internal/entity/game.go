package entity

import "time"

const (
	MarkX = "X"
	MarkO = "O"

	WinnerDraw = "draw"

	EmptyCell = ""
)

const (
	SingleType      = "single"
	MultiplayerType = "multiplayer"
)

// BoardSize - side length of the persisted board. Only 3x3 games are stored.
const BoardSize = 3

// Board - serializes empty cells as empty strings, never nulls.
type Board [BoardSize][BoardSize]string

// Move - one applied move, appended to the game log in play order.
type Move struct {
	Mark     string    `json:"player"`
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	PlayedAt time.Time `json:"timestamp"`
}

type Game struct {
	ID          string     `json:"id"`
	PlayerXID   string     `json:"player_x"`
	PlayerOID   string     `json:"player_o,omitempty"`
	Board       Board      `json:"board"`
	CurrentMark string     `json:"current_mark"`
	Winner      string     `json:"winner,omitempty"`
	IsComplete  bool       `json:"is_complete"`
	Type        string     `json:"game_type"`
	Moves       []Move     `json:"moves"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewGame - creates an empty game with creator as the X holder and X to move.
func NewGame(id, playerXID, gameType string) *Game {
	return &Game{
		ID:          id,
		PlayerXID:   playerXID,
		CurrentMark: MarkX,
		Type:        gameType,
		CreatedAt:   time.Now().UTC(),
	}
}

func (that *Game) IsMultiplayer() bool {
	return that.Type == MultiplayerType
}

func (that *Game) HasPlayerO() bool {
	return that.PlayerOID != ""
}

// IsParticipant - reports whether userID holds either mark of this game.
func (that *Game) IsParticipant(userID string) bool {
	return that.PlayerXID == userID || (that.HasPlayerO() && that.PlayerOID == userID)
}

// MarkOf - resolves the mark userID plays with, if any.
func (that *Game) MarkOf(userID string) (string, bool) {
	switch {
	case that.PlayerXID == userID:
		return MarkX, true
	case that.HasPlayerO() && that.PlayerOID == userID:
		return MarkO, true
	default:
		return "", false
	}
}

// ParticipantIDs - the X holder first, then the O holder when present.
func (that *Game) ParticipantIDs() []string {
	ids := []string{that.PlayerXID}
	if that.HasPlayerO() {
		ids = append(ids, that.PlayerOID)
	}

	return ids
}
