package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/pkg/localgame"
)

// computerDelay paces the computer's reply so it reads as a turn, not an echo.
const computerDelay = 600 * time.Millisecond

func runLocal(output *termenv.Output, size int, mode localgame.Mode, difficulty localgame.Difficulty) error {
	session, err := localgame.NewSession(size, mode, difficulty)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Local %dx%d game (%s). Enter moves as \"row col\", or: new, scores, history, quit.\n", size, size, mode)
	renderBoard(output, session.Game().Board(), nil)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(output, "%s> ", renderMark(output, session.Game().CurrentMark(), false))
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return nil
		case "new":
			session.NextRound()
			renderBoard(output, session.Game().Board(), nil)
			continue
		case "scores":
			printScores(output, session.Scores())
			continue
		case "history":
			printHistory(output, session.History())
			continue
		}

		row, col, err := parseMove(fields)
		if err != nil {
			fmt.Fprintln(output, err)
			continue
		}

		if err := session.Click(row, col); err != nil {
			fmt.Fprintln(output, err)
			continue
		}

		renderBoard(output, session.Game().Board(), session.Game().WinningLine())

		if finished(output, session) {
			continue
		}

		if mode == localgame.ModeAI {
			// the generation captured here invalidates the reply if the
			// board is reset while we wait
			generation := session.Game().Generation()
			time.Sleep(computerDelay)

			cell, err := session.ComputerMove(generation)
			if errors.Is(err, localgame.ErrGameOver) || errors.Is(err, localgame.ErrHumanTurn) {
				continue
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(output, "Computer plays %d %d\n", cell.Row+1, cell.Col+1)
			renderBoard(output, session.Game().Board(), session.Game().WinningLine())
			finished(output, session)
		}
	}
}

// finished prints the outcome when the round ended and says how to continue.
func finished(output *termenv.Output, session *localgame.Session) bool {
	if !session.Game().IsOver() {
		return false
	}

	renderOutcome(output, session.Game().Winner())
	printScores(output, session.Scores())
	fmt.Fprintln(output, `Type "new" for the next round.`)

	return true
}

func parseMove(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, errors.New(`enter a move as "row col"`)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", fields[1])
	}

	return row - 1, col - 1, nil
}

func printScores(output *termenv.Output, scores localgame.Scores) {
	fmt.Fprintf(output, "Score: %s %d, %s %d, draws %d\n",
		renderMark(output, localgame.MarkX, false), scores.X,
		renderMark(output, localgame.MarkO, false), scores.O,
		scores.Draws)
}

func printHistory(output *termenv.Output, history []localgame.HistoryEntry) {
	if len(history) == 0 {
		fmt.Fprintln(output, "No finished games yet.")
		return
	}

	for i, entry := range history {
		winner := entry.Winner
		if winner != localgame.WinnerDraw {
			winner = renderMark(output, winner, false)
		}
		fmt.Fprintf(output, "%2d. %s in %d moves (%dx%d %s, %s)\n",
			i+1, winner, entry.Moves, entry.Size, entry.Size, entry.Mode,
			entry.Duration.Round(time.Second))
	}
}
