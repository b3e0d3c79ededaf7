package localgame

import (
	"errors"
	"time"
)

// historyLimit bounds the kept results, newest first.
const historyLimit = 10

var (
	ErrComputerTurn = errors.New("it's the computer's turn")
	ErrHumanTurn    = errors.New("it's not the computer's turn")
)

type Scores struct {
	X     int
	O     int
	Draws int
}

type HistoryEntry struct {
	Winner   string
	Moves    int
	Duration time.Duration
	Size     int
	Mode     Mode
	PlayedAt time.Time
}

// Session - a run of local games sharing a scoreboard and history. In AI
// mode the computer always holds O; X is the human and moves first.
type Session struct {
	game       *Game
	mode       Mode
	difficulty Difficulty

	scores  Scores
	history []HistoryEntry
}

func NewSession(size int, mode Mode, difficulty Difficulty) (*Session, error) {
	game, err := New(size)
	if err != nil {
		return nil, err
	}

	return &Session{
		game:       game,
		mode:       mode,
		difficulty: difficulty,
	}, nil
}

func (that *Session) Game() *Game    { return that.game }
func (that *Session) Mode() Mode     { return that.mode }
func (that *Session) Scores() Scores { return that.scores }

func (that *Session) History() []HistoryEntry {
	return append([]HistoryEntry(nil), that.history...)
}

// Click - a human cell click. In AI mode clicks are ignored while it is the
// computer's turn, so a slow computer move cannot be raced by the human.
func (that *Session) Click(row, col int) error {
	if that.mode == ModeAI && !that.game.IsOver() && that.game.CurrentMark() == MarkO {
		return ErrComputerTurn
	}

	if err := that.game.Apply(row, col); err != nil {
		return err
	}

	that.recordIfOver()

	return nil
}

// ComputerMove - selects and applies the computer's move. Callers delay the
// call for pacing; the preceding human move is already fully applied, and a
// reset in between invalidates the attempt via the game's generation.
func (that *Session) ComputerMove(generation int) (Cell, error) {
	if !that.game.StillCurrent(generation) {
		return Cell{}, ErrGameOver
	}

	if that.mode != ModeAI || that.game.CurrentMark() != MarkO {
		return Cell{}, ErrHumanTurn
	}

	if that.game.IsOver() {
		return Cell{}, ErrGameOver
	}

	cell, ok := SelectMove(that.game.board, MarkO, that.difficulty)
	if !ok {
		return Cell{}, ErrGameOver
	}

	if err := that.game.Apply(cell.Row, cell.Col); err != nil {
		return Cell{}, err
	}

	that.recordIfOver()

	return cell, nil
}

// NextRound - keeps scores and history, starts a fresh board.
func (that *Session) NextRound() {
	that.game.Reset()
}

func (that *Session) ResetScores() {
	that.scores = Scores{}
	that.history = nil
}

func (that *Session) recordIfOver() {
	if !that.game.IsOver() {
		return
	}

	switch that.game.Winner() {
	case MarkX:
		that.scores.X++
	case MarkO:
		that.scores.O++
	case WinnerDraw:
		that.scores.Draws++
	}

	entry := HistoryEntry{
		Winner:   that.game.Winner(),
		Moves:    that.game.MoveCount(),
		Duration: that.game.Duration(),
		Size:     that.game.Size(),
		Mode:     that.mode,
		PlayedAt: time.Now(),
	}

	that.history = append([]HistoryEntry{entry}, that.history...)
	if len(that.history) > historyLimit {
		that.history = that.history[:historyLimit]
	}
}
