package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns X with the row line when X completes the top row", func(t *testing.T) {
		// Given: a board with X across the top row
		board := entity.Board{
			{entity.MarkX, entity.MarkX, entity.MarkX},
			{entity.MarkO, entity.MarkO, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: X wins along (0,0)-(0,2)
		assert.Equal(t, entity.MarkX, result.Winner)
		assert.Equal(t, []Cell{{0, 0}, {0, 1}, {0, 2}}, result.Line)
	})

	t.Run("Returns O with the column line when O completes a column", func(t *testing.T) {
		// Given: a board with O down the middle column
		board := entity.Board{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.EmptyCell, entity.MarkO, entity.MarkX},
			{entity.EmptyCell, entity.MarkO, entity.EmptyCell},
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: O wins along (0,1)-(2,1)
		assert.Equal(t, entity.MarkO, result.Winner)
		assert.Equal(t, []Cell{{0, 1}, {1, 1}, {2, 1}}, result.Line)
	})

	t.Run("Detects the main diagonal", func(t *testing.T) {
		board := entity.Board{
			{entity.MarkX, entity.MarkO, entity.EmptyCell},
			{entity.MarkO, entity.MarkX, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.MarkX},
		}

		result := Evaluate(board)

		assert.Equal(t, entity.MarkX, result.Winner)
		assert.Equal(t, []Cell{{0, 0}, {1, 1}, {2, 2}}, result.Line)
	})

	t.Run("Detects the anti-diagonal", func(t *testing.T) {
		board := entity.Board{
			{entity.MarkX, entity.MarkX, entity.MarkO},
			{entity.MarkX, entity.MarkO, entity.EmptyCell},
			{entity.MarkO, entity.EmptyCell, entity.EmptyCell},
		}

		result := Evaluate(board)

		assert.Equal(t, entity.MarkO, result.Winner)
		assert.Equal(t, []Cell{{0, 2}, {1, 1}, {2, 0}}, result.Line)
	})

	t.Run("Returns draw for a full board with no line, never in progress", func(t *testing.T) {
		// Given: a full board with no three-in-a-row anywhere
		board := entity.Board{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.MarkX, entity.MarkO, entity.MarkO},
			{entity.MarkO, entity.MarkX, entity.MarkX},
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the outcome is a draw with no line
		assert.Equal(t, entity.WinnerDraw, result.Winner)
		assert.Empty(t, result.Line)
		assert.True(t, result.IsTerminal())
	})

	t.Run("Returns no winner while empty cells remain", func(t *testing.T) {
		board := entity.Board{
			{entity.MarkX, entity.MarkO, entity.EmptyCell},
			{entity.EmptyCell, entity.MarkX, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		}

		result := Evaluate(board)

		assert.False(t, result.IsTerminal())
	})

	t.Run("Is a pure function of board contents", func(t *testing.T) {
		// Given: any board
		board := entity.Board{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.EmptyCell, entity.MarkO, entity.EmptyCell},
			{entity.EmptyCell, entity.MarkO, entity.EmptyCell},
		}

		// When: evaluating it twice
		first := Evaluate(board)
		second := Evaluate(board)

		// Then: both results are identical
		assert.Equal(t, first, second)
	})
}

func TestApply(t *testing.T) {
	newGame := func() *entity.Game {
		return entity.NewGame("game1", "userX", entity.MultiplayerType)
	}

	t.Run("Legal move occupies exactly one cell and logs it", func(t *testing.T) {
		// Given: a fresh game with X to move
		game := newGame()

		// When: X plays (1, 1)
		err := Apply(game, 1, 1, entity.MarkX)

		// Then: the cell is set, the move is logged, and the turn flips to O
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, game.Board[1][1])
		assert.Equal(t, 1, countOccupied(game.Board))
		require.Len(t, game.Moves, 1)
		assert.Equal(t, entity.Move{Mark: entity.MarkX, Row: 1, Col: 1, PlayedAt: game.Moves[0].PlayedAt}, game.Moves[0])
		assert.Equal(t, entity.MarkO, game.CurrentMark)
	})

	t.Run("X always moves first", func(t *testing.T) {
		game := newGame()

		err := Apply(game, 0, 0, entity.MarkO)

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.EmptyCell, game.Board[0][0])
	})

	t.Run("Rejects out-of-range coordinates before any state change", func(t *testing.T) {
		game := newGame()

		for _, pos := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			err := Apply(game, pos[0], pos[1], entity.MarkX)
			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
		}

		assert.Empty(t, game.Moves)
		assert.Equal(t, entity.MarkX, game.CurrentMark)
	})

	t.Run("Rejects an occupied cell without partial mutation", func(t *testing.T) {
		// Given: a game where X already took (0, 0)
		game := newGame()
		require.NoError(t, Apply(game, 0, 0, entity.MarkX))
		before := *game

		// When: O plays the same cell
		err := Apply(game, 0, 0, entity.MarkO)

		// Then: the move is rejected and nothing changed
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before.Board, game.Board)
		assert.Equal(t, before.CurrentMark, game.CurrentMark)
		assert.Len(t, game.Moves, 1)
	})

	t.Run("X completing the top row wins with that line and stops the turn flip", func(t *testing.T) {
		// Given: X plays the top row with O interspersed elsewhere
		game := newGame()
		require.NoError(t, Apply(game, 0, 0, entity.MarkX))
		require.NoError(t, Apply(game, 1, 0, entity.MarkO))
		require.NoError(t, Apply(game, 0, 1, entity.MarkX))
		require.NoError(t, Apply(game, 1, 1, entity.MarkO))
		turnBefore := game.CurrentMark

		// When: X plays the final cell of the row
		err := Apply(game, 0, 2, entity.MarkX)

		// Then: X wins, completion time is set, and the turn did not flip
		require.NoError(t, err)
		assert.True(t, game.IsComplete)
		assert.Equal(t, entity.MarkX, game.Winner)
		require.NotNil(t, game.CompletedAt)
		assert.Equal(t, turnBefore, game.CurrentMark)

		result := Evaluate(game.Board)
		assert.Equal(t, []Cell{{0, 0}, {0, 1}, {0, 2}}, result.Line)
	})

	t.Run("Alternating fill with no line ends in a draw", func(t *testing.T) {
		// Given: a move order that fills the board without three-in-a-row
		game := newGame()
		moves := []struct {
			row, col int
			mark     string
		}{
			{0, 0, entity.MarkX}, {0, 1, entity.MarkO}, {0, 2, entity.MarkX},
			{1, 1, entity.MarkO}, {1, 0, entity.MarkX}, {2, 0, entity.MarkO},
			{1, 2, entity.MarkX}, {2, 2, entity.MarkO}, {2, 1, entity.MarkX},
		}

		// When: applying all nine moves
		for _, m := range moves {
			require.NoError(t, Apply(game, m.row, m.col, m.mark))
		}

		// Then: the game is a draw
		assert.True(t, game.IsComplete)
		assert.Equal(t, entity.WinnerDraw, game.Winner)
		assert.Len(t, game.Moves, 9)
	})

	t.Run("A completed game rejects every further move and stays byte-identical", func(t *testing.T) {
		// Given: a game X already won
		game := newGame()
		require.NoError(t, Apply(game, 0, 0, entity.MarkX))
		require.NoError(t, Apply(game, 1, 0, entity.MarkO))
		require.NoError(t, Apply(game, 0, 1, entity.MarkX))
		require.NoError(t, Apply(game, 1, 1, entity.MarkO))
		require.NoError(t, Apply(game, 0, 2, entity.MarkX))
		require.True(t, game.IsComplete)
		before := *game

		// When: O attempts another move
		err := Apply(game, 2, 2, entity.MarkO)

		// Then: the attempt is rejected and the game is untouched
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before.Board, game.Board)
		assert.Equal(t, before.Winner, game.Winner)
		assert.Equal(t, before.CurrentMark, game.CurrentMark)
		assert.Len(t, game.Moves, len(before.Moves))
	})

	t.Run("Turn flips after every non-terminal accepted move", func(t *testing.T) {
		game := newGame()

		require.NoError(t, Apply(game, 0, 0, entity.MarkX))
		assert.Equal(t, entity.MarkO, game.CurrentMark)

		require.NoError(t, Apply(game, 1, 1, entity.MarkO))
		assert.Equal(t, entity.MarkX, game.CurrentMark)
	})
}

func countOccupied(board entity.Board) int {
	count := 0
	for _, row := range board {
		for _, cell := range row {
			if cell != entity.EmptyCell {
				count++
			}
		}
	}

	return count
}
