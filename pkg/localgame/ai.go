package localgame

import "math/rand"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SelectMove - chooses a cell for mark among the currently empty cells.
// Returns false only when the board is full.
//
//   - easy: uniformly random.
//   - medium: the hard heuristic half the time, random otherwise.
//   - hard: win if possible, else block the opponent's immediate win, else
//     center (odd boards), else a random free corner, else random.
//
// The hard tier looks exactly one ply ahead; it does no deeper search and
// is beatable, especially on boards larger than 3x3. That is intended.
func SelectMove(board [][]string, mark string, difficulty Difficulty) (Cell, bool) {
	empty := emptyCells(board)
	if len(empty) == 0 {
		return Cell{}, false
	}

	switch difficulty {
	case DifficultyHard:
		return heuristicMove(board, mark, empty), true
	case DifficultyMedium:
		if rand.Float64() < 0.5 { //nolint:gosec // game randomness, not security
			return heuristicMove(board, mark, empty), true
		}
		return empty[rand.Intn(len(empty))], true //nolint:gosec // game randomness
	default:
		return empty[rand.Intn(len(empty))], true //nolint:gosec // game randomness
	}
}

func heuristicMove(board [][]string, mark string, empty []Cell) Cell {
	if cell, ok := winningCell(board, mark, empty); ok {
		return cell
	}

	if cell, ok := winningCell(board, toggleMark(mark), empty); ok {
		return cell
	}

	size := len(board)
	if size%2 == 1 {
		center := size / 2
		if board[center][center] == emptyCell {
			return Cell{Row: center, Col: center}
		}
	}

	corners := []Cell{
		{Row: 0, Col: 0},
		{Row: 0, Col: size - 1},
		{Row: size - 1, Col: 0},
		{Row: size - 1, Col: size - 1},
	}
	free := corners[:0]
	for _, corner := range corners {
		if board[corner.Row][corner.Col] == emptyCell {
			free = append(free, corner)
		}
	}
	if len(free) > 0 {
		return free[rand.Intn(len(free))] //nolint:gosec // game randomness
	}

	return empty[rand.Intn(len(empty))] //nolint:gosec // game randomness
}

// winningCell - the one-ply lookahead: does placing mark anywhere complete
// a line right now?
func winningCell(board [][]string, mark string, empty []Cell) (Cell, bool) {
	for _, cell := range empty {
		board[cell.Row][cell.Col] = mark
		result := Evaluate(board)
		board[cell.Row][cell.Col] = emptyCell

		if result.Winner == mark {
			return cell, true
		}
	}

	return Cell{}, false
}

func emptyCells(board [][]string) []Cell {
	var cells []Cell
	for row := range board {
		for col := range board[row] {
			if board[row][col] == emptyCell {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}
