// Package localgame is the client-side game engine: an ephemeral board for
// local play on 3x3 up to 5x5 grids, either player-vs-player or against the
// built-in computer opponent. It is self-contained and makes no network
// calls; persisted multiplayer games are validated server-side instead and
// never trust this engine's outcomes.
package localgame

import (
	"errors"
	"fmt"
	"time"
)

const (
	MarkX = "X"
	MarkO = "O"

	WinnerDraw = "draw"

	emptyCell = ""
)

const (
	MinSize = 3
	MaxSize = 5
)

type Mode string

const (
	ModePVP Mode = "pvp"
	ModeAI  Mode = "ai"
)

var (
	ErrInvalidSize  = fmt.Errorf("board size must be between %d and %d", MinSize, MaxSize)
	ErrGameOver     = errors.New("game is already over")
	ErrOutOfRange   = errors.New("cell is out of range")
	ErrCellOccupied = errors.New("cell is already occupied")
)

// Cell - a board coordinate.
type Cell struct {
	Row int
	Col int
}

// Result - outcome of evaluating a board; Winner is empty while the game
// continues, and Line holds the winning line for highlighting.
type Result struct {
	Winner string
	Line   []Cell
}

func (that Result) IsTerminal() bool {
	return that.Winner != ""
}

// Evaluate - win/draw detection over an NxN board: each row, each column,
// and the two main diagonals. A full board with no line is a draw. Pure
// function of board contents. When a move completes several lines at once,
// the first in scan order is reported; the winner is the same either way.
func Evaluate(board [][]string) Result {
	size := len(board)

	for row := range size {
		if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: row, Col: i} }); ok {
			return Result{Winner: board[row][0], Line: line}
		}
	}

	for col := range size {
		if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: col} }); ok {
			return Result{Winner: board[0][col], Line: line}
		}
	}

	if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: i} }); ok {
		return Result{Winner: board[0][0], Line: line}
	}

	if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: size - 1 - i} }); ok {
		return Result{Winner: board[0][size-1], Line: line}
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == emptyCell {
				return Result{}
			}
		}
	}

	return Result{Winner: WinnerDraw}
}

func checkLine(board [][]string, at func(i int) Cell) ([]Cell, bool) {
	size := len(board)

	first := board[at(0).Row][at(0).Col]
	if first == emptyCell {
		return nil, false
	}

	line := make([]Cell, 0, size)
	for i := range size {
		cell := at(i)
		if board[cell.Row][cell.Col] != first {
			return nil, false
		}
		line = append(line, cell)
	}

	return line, true
}

// Game - one local game. All mutation happens through Apply and Reset on
// the caller's event loop; there is no internal locking.
type Game struct {
	size        int
	board       [][]string
	currentMark string
	winner      string
	over        bool
	winningLine []Cell
	lastMove    *Cell
	moveCount   int
	startedAt   time.Time

	// generation increments on every reset; a delayed computer move
	// scheduled before a reset sees a stale generation and must not apply.
	generation int
}

func New(size int) (*Game, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}

	game := &Game{size: size}
	game.Reset()

	return game, nil
}

// Reset - clears the board for a new game and invalidates any pending
// delayed computer move.
func (that *Game) Reset() {
	board := make([][]string, that.size)
	for i := range board {
		board[i] = make([]string, that.size)
	}

	that.board = board
	that.currentMark = MarkX
	that.winner = ""
	that.over = false
	that.winningLine = nil
	that.lastMove = nil
	that.moveCount = 0
	that.startedAt = time.Now()
	that.generation++
}

func (that *Game) Size() int { return that.size }

// Board - a copy; the internal board is never aliased out.
func (that *Game) Board() [][]string {
	board := make([][]string, that.size)
	for i, row := range that.board {
		board[i] = append([]string(nil), row...)
	}

	return board
}

func (that *Game) CurrentMark() string { return that.currentMark }
func (that *Game) Winner() string      { return that.winner }
func (that *Game) IsOver() bool        { return that.over }
func (that *Game) MoveCount() int      { return that.moveCount }

// WinningLine - the highlighted line of a won game, nil otherwise.
func (that *Game) WinningLine() []Cell {
	return append([]Cell(nil), that.winningLine...)
}

func (that *Game) LastMove() (Cell, bool) {
	if that.lastMove == nil {
		return Cell{}, false
	}

	return *that.lastMove, true
}

func (that *Game) Duration() time.Duration {
	return time.Since(that.startedAt)
}

// Generation - the reset counter. Callers scheduling a delayed computer
// move capture it and pass it back to StillCurrent before applying.
func (that *Game) Generation() int {
	return that.generation
}

func (that *Game) StillCurrent(generation int) bool {
	return that.generation == generation
}

// Apply - plays the current mark into (row, col) or rejects the click with
// the board untouched. On acceptance the board is re-evaluated; a terminal
// result freezes the game, otherwise the turn flips.
func (that *Game) Apply(row, col int) error {
	if that.over {
		return ErrGameOver
	}

	if row < 0 || row >= that.size || col < 0 || col >= that.size {
		return ErrOutOfRange
	}

	if that.board[row][col] != emptyCell {
		return ErrCellOccupied
	}

	that.board[row][col] = that.currentMark
	that.lastMove = &Cell{Row: row, Col: col}
	that.moveCount++

	if result := Evaluate(that.board); result.IsTerminal() {
		that.winner = result.Winner
		that.winningLine = result.Line
		that.over = true

		return nil
	}

	that.currentMark = toggleMark(that.currentMark)

	return nil
}

func toggleMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}

	return MarkX
}
