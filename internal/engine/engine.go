package engine

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// Cell - a board coordinate, used to report the winning line.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Result - outcome of evaluating a board. Winner is empty while the game is
// still in progress; Line holds the completed line for a won board.
type Result struct {
	Winner string
	Line   []Cell
}

// IsTerminal - reports whether the board reached a win or a draw.
func (that Result) IsTerminal() bool {
	return that.Winner != ""
}

// Evaluate - scans rows, columns, and both main diagonals of the board.
// A pure function of board contents: the same board always yields the same
// result. The first completed line in scan order is reported.
func Evaluate(board entity.Board) Result {
	for row := range entity.BoardSize {
		if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: row, Col: i} }); ok {
			return Result{Winner: board[row][0], Line: line}
		}
	}

	for col := range entity.BoardSize {
		if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: col} }); ok {
			return Result{Winner: board[0][col], Line: line}
		}
	}

	if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: i} }); ok {
		return Result{Winner: board[0][0], Line: line}
	}

	if line, ok := checkLine(board, func(i int) Cell { return Cell{Row: i, Col: entity.BoardSize - 1 - i} }); ok {
		return Result{Winner: board[0][entity.BoardSize-1], Line: line}
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == entity.EmptyCell {
				return Result{}
			}
		}
	}

	return Result{Winner: entity.WinnerDraw}
}

func checkLine(board entity.Board, at func(i int) Cell) ([]Cell, bool) {
	first := board[at(0).Row][at(0).Col]
	if first == entity.EmptyCell {
		return nil, false
	}

	line := make([]Cell, 0, entity.BoardSize)
	for i := range entity.BoardSize {
		cell := at(i)
		if board[cell.Row][cell.Col] != first {
			return nil, false
		}
		line = append(line, cell)
	}

	return line, true
}

// Apply - applies a prospective move to the game or rejects it untouched.
// Rejections are checked in order: game complete, coordinates out of range,
// cell occupied, mark out of turn. On acceptance the move is logged, the
// board re-evaluated, and either the outcome recorded or the turn flipped.
func Apply(game *entity.Game, row, col int, mark string) error {
	if game.IsComplete {
		return apperror.ErrGameFinished
	}

	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return apperror.ErrInvalidCell
	}

	if game.Board[row][col] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	if game.CurrentMark != mark {
		return apperror.ErrNotYourTurn
	}

	game.Board[row][col] = mark
	game.Moves = append(game.Moves, entity.Move{
		Mark:     mark,
		Row:      row,
		Col:      col,
		PlayedAt: time.Now().UTC(),
	})

	if result := Evaluate(game.Board); result.IsTerminal() {
		game.Winner = result.Winner
		game.IsComplete = true
		completedAt := time.Now().UTC()
		game.CompletedAt = &completedAt

		return nil
	}

	game.CurrentMark = toggleMark(mark)

	return nil
}

func toggleMark(mark string) string {
	if mark == entity.MarkX {
		return entity.MarkO
	}

	return entity.MarkX
}
