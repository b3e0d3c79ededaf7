package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/pkg/localgame"
)

const (
	colorX    = "9"  // bright red
	colorO    = "12" // bright blue
	colorLine = "10" // bright green
	colorDim  = "8"
)

func renderMark(output *termenv.Output, mark string, highlighted bool) string {
	if mark == "" {
		return output.String(".").Foreground(output.Color(colorDim)).String()
	}

	color := colorO
	if mark == localgame.MarkX {
		color = colorX
	}
	if highlighted {
		color = colorLine
	}

	style := output.String(mark).Foreground(output.Color(color))
	if highlighted {
		style = style.Bold()
	}

	return style.String()
}

// renderBoard - the board with 1-based row and column labels; cells on the
// winning line are highlighted.
func renderBoard(output *termenv.Output, board [][]string, winningLine []localgame.Cell) {
	onLine := make(map[localgame.Cell]bool, len(winningLine))
	for _, cell := range winningLine {
		onLine[cell] = true
	}

	var header strings.Builder
	header.WriteString("   ")
	for col := range board {
		fmt.Fprintf(&header, " %d", col+1)
	}
	fmt.Fprintln(output, output.String(header.String()).Foreground(output.Color(colorDim)))

	for row, cells := range board {
		fmt.Fprintf(output, " %s ", output.String(fmt.Sprintf("%d", row+1)).Foreground(output.Color(colorDim)))
		for col, mark := range cells {
			fmt.Fprintf(output, " %s", renderMark(output, mark, onLine[localgame.Cell{Row: row, Col: col}]))
		}
		fmt.Fprintln(output)
	}
}

func renderOutcome(output *termenv.Output, winner string) {
	if winner == localgame.WinnerDraw {
		fmt.Fprintln(output, output.String("It's a draw.").Bold())
		return
	}

	fmt.Fprintf(output, "%s wins!\n", renderMark(output, winner, true))
}
