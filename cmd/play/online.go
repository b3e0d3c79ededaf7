package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/pkg/apiclient"
	"github.com/rocketscienceinc/tictactoe-web/pkg/clientstate"
)

// onlineClient holds the reducer-managed view of the server. Every server
// response flows through a reducer; nothing mutates the state directly.
type onlineClient struct {
	output  *termenv.Output
	api     *apiclient.Client
	scanner *bufio.Scanner

	auth  clientstate.AuthState
	games clientstate.GamesState
}

func runOnline(output *termenv.Output, serverURL string) error {
	client := &onlineClient{
		output:  output,
		api:     apiclient.New(serverURL),
		scanner: bufio.NewScanner(os.Stdin),
	}

	fmt.Fprintf(output, "Connected to %s.\n", serverURL)
	fmt.Fprintln(output, "Commands: register, login, logout, profile, list, new [single|multiplayer], open <id>, join <id>, move <row> <col>, refresh, delete <id>, quit.")

	for {
		fmt.Fprint(output, client.prompt())
		if !client.scanner.Scan() {
			return client.scanner.Err()
		}

		fields := strings.Fields(client.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "q" {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		client.dispatch(ctx, fields)
		cancel()
	}
}

func (that *onlineClient) prompt() string {
	switch {
	case !that.auth.Authenticated:
		return "guest> "
	case that.games.Active != nil:
		return fmt.Sprintf("%s:%s> ", that.auth.User.Username, shortID(that.games.Active.ID))
	default:
		return that.auth.User.Username + "> "
	}
}

func (that *onlineClient) dispatch(ctx context.Context, fields []string) {
	command, args := fields[0], fields[1:]

	if !that.auth.Authenticated && command != "register" && command != "login" {
		fmt.Fprintln(that.output, "Log in first: register or login.")
		return
	}

	switch command {
	case "register":
		that.register(ctx)
	case "login":
		that.login(ctx)
	case "logout":
		that.auth = clientstate.ReduceAuth(that.auth, clientstate.LoggedOut{})
		that.games = clientstate.GamesState{}
		that.api.SetToken("")
	case "profile":
		that.profile(ctx)
	case "list", "refresh":
		that.list(ctx)
	case "new":
		that.create(ctx, args)
	case "open":
		that.open(ctx, args)
	case "join":
		that.join(ctx, args)
	case "move":
		that.move(ctx, args)
	case "delete":
		that.remove(ctx, args)
	default:
		fmt.Fprintf(that.output, "Unknown command %q.\n", command)
	}
}

func (that *onlineClient) register(ctx context.Context) {
	username := that.ask("username: ")
	email := that.ask("email: ")
	password := that.ask("password: ")

	grant, err := that.api.Register(ctx, username, email, password)
	if err != nil {
		that.auth = clientstate.ReduceAuth(that.auth, clientstate.AuthFailed{Message: errorMessage(err)})
		fmt.Fprintln(that.output, that.auth.Err)
		return
	}

	that.auth = clientstate.ReduceAuth(that.auth, clientstate.AuthSucceeded{User: grant.User, Token: grant.Token})
	fmt.Fprintf(that.output, "Welcome, %s.\n", grant.User.Username)
}

func (that *onlineClient) login(ctx context.Context) {
	login := that.ask("username or email: ")
	password := that.ask("password: ")

	grant, err := that.api.Login(ctx, login, password)
	if err != nil {
		that.auth = clientstate.ReduceAuth(that.auth, clientstate.AuthFailed{Message: errorMessage(err)})
		fmt.Fprintln(that.output, that.auth.Err)
		return
	}

	that.auth = clientstate.ReduceAuth(that.auth, clientstate.AuthSucceeded{User: grant.User, Token: grant.Token})
	fmt.Fprintf(that.output, "Welcome back, %s.\n", grant.User.Username)
	that.list(ctx)
}

func (that *onlineClient) profile(ctx context.Context) {
	user, err := that.api.Profile(ctx)
	if err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.auth = clientstate.ReduceAuth(that.auth, clientstate.UserUpdated{User: user})
	fmt.Fprintf(that.output, "%s <%s>: played %d, won %d, lost %d, drawn %d\n",
		user.Username, user.Email,
		user.Stats.GamesPlayed, user.Stats.GamesWon, user.Stats.GamesLost, user.Stats.GamesDrawn)
}

func (that *onlineClient) list(ctx context.Context) {
	games, err := that.api.ListGames(ctx)
	if err != nil {
		that.games = clientstate.ReduceGames(that.games, clientstate.GamesErrorSet{Message: errorMessage(err)})
		fmt.Fprintln(that.output, that.games.Err)
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GamesLoaded{Games: games})

	if len(games) == 0 {
		fmt.Fprintln(that.output, "No games yet. Start one with: new")
		return
	}

	for _, game := range games {
		fmt.Fprintf(that.output, "  %s  %-11s %s\n", shortID(game.ID), game.GameType, gameStatus(game))
	}
}

func (that *onlineClient) create(ctx context.Context, args []string) {
	gameType := "single"
	if len(args) > 0 {
		gameType = args[0]
	}

	game, err := that.api.CreateGame(ctx, gameType)
	if err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GameAdded{Game: game})
	that.games = clientstate.ReduceGames(that.games, clientstate.ActiveGameSet{Game: game})

	fmt.Fprintf(that.output, "Game %s created.\n", game.ID)
	that.showActive()
}

func (that *onlineClient) open(ctx context.Context, args []string) {
	id, ok := that.resolveID(args)
	if !ok {
		return
	}

	game, err := that.api.GetGame(ctx, id)
	if err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GameUpdated{Game: game})
	that.games = clientstate.ReduceGames(that.games, clientstate.ActiveGameSet{Game: game})
	that.showActive()
}

func (that *onlineClient) join(ctx context.Context, args []string) {
	id, ok := that.resolveID(args)
	if !ok {
		return
	}

	game, err := that.api.JoinGame(ctx, id)
	if err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GameAdded{Game: game})
	that.games = clientstate.ReduceGames(that.games, clientstate.ActiveGameSet{Game: game})
	that.showActive()
}

func (that *onlineClient) move(ctx context.Context, args []string) {
	if that.games.Active == nil {
		fmt.Fprintln(that.output, "Open a game first: open <id>")
		return
	}

	row, col, err := parseMove(args)
	if err != nil {
		fmt.Fprintln(that.output, err)
		return
	}

	game, err := that.api.Move(ctx, that.games.Active.ID, row, col)
	if err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GameUpdated{Game: game})
	that.showActive()
}

func (that *onlineClient) remove(ctx context.Context, args []string) {
	id, ok := that.resolveID(args)
	if !ok {
		return
	}

	if err := that.api.DeleteGame(ctx, id); err != nil {
		fmt.Fprintln(that.output, errorMessage(err))
		return
	}

	that.games = clientstate.ReduceGames(that.games, clientstate.GameRemoved{ID: id})
	fmt.Fprintln(that.output, "Game deleted.")
}

func (that *onlineClient) showActive() {
	game := that.games.Active
	if game == nil {
		return
	}

	renderBoard(that.output, game.Board, nil)

	switch {
	case game.IsComplete:
		renderOutcome(that.output, game.Winner)
	case game.GameType == "multiplayer" && game.PlayerO == nil:
		fmt.Fprintf(that.output, "Waiting for an opponent. Share the game ID: %s\n", game.ID)
	default:
		fmt.Fprintf(that.output, "%s to move.\n", renderMark(that.output, game.CurrentMark, false))
	}
}

// resolveID accepts a full game ID, a short prefix of a listed game, or
// nothing when exactly one game is active.
func (that *onlineClient) resolveID(args []string) (string, bool) {
	if len(args) == 0 {
		if that.games.Active != nil {
			return that.games.Active.ID, true
		}
		fmt.Fprintln(that.output, "Which game? Pass an ID.")
		return "", false
	}

	for _, game := range that.games.Games {
		if game.ID == args[0] || strings.HasPrefix(game.ID, args[0]) {
			return game.ID, true
		}
	}

	return args[0], true
}

func (that *onlineClient) ask(prompt string) string {
	fmt.Fprint(that.output, prompt)
	if !that.scanner.Scan() {
		return ""
	}

	return strings.TrimSpace(that.scanner.Text())
}

func gameStatus(game *apiclient.Game) string {
	switch {
	case game.IsComplete && game.Winner == "draw":
		return "draw"
	case game.IsComplete:
		return "won by " + game.Winner
	case game.GameType == "multiplayer" && game.PlayerO == nil:
		return "waiting for opponent"
	default:
		return game.CurrentMark + " to move"
	}
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return err.Error()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
