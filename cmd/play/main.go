package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/pkg/localgame"
)

func main() {
	var (
		server     = flag.String("server", "", "game server URL; empty plays locally")
		size       = flag.Int("size", 3, "board size for local play (3-5)")
		mode       = flag.String("mode", "ai", "local opponent: ai or pvp")
		difficulty = flag.String("difficulty", "medium", "computer strength: easy, medium or hard")
	)
	flag.Parse()

	output := termenv.NewOutput(os.Stdout)

	if *server != "" {
		if err := runOnline(output, *server); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	gameMode := localgame.ModePVP
	if *mode == "ai" {
		gameMode = localgame.ModeAI
	}

	if err := runLocal(output, *size, gameMode, localgame.Difficulty(*difficulty)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
