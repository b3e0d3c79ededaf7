// Package apiclient is a typed client for the game server's REST API,
// used by terminal clients for the persisted multiplayer mode. The server
// response is always authoritative: callers replace their view of a game
// with whatever a call returns.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Stats struct {
	GamesPlayed int `json:"games_played"`
	GamesWon    int `json:"games_won"`
	GamesLost   int `json:"games_lost"`
	GamesDrawn  int `json:"games_drawn"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Stats    Stats  `json:"stats"`
}

type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Move struct {
	Mark     string    `json:"player"`
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	PlayedAt time.Time `json:"timestamp"`
}

type Game struct {
	ID          string     `json:"id"`
	PlayerX     *Player    `json:"player_x"`
	PlayerO     *Player    `json:"player_o,omitempty"`
	Board       [][]string `json:"board"`
	CurrentMark string     `json:"current_mark"`
	Winner      string     `json:"winner,omitempty"`
	IsComplete  bool       `json:"is_complete"`
	GameType    string     `json:"game_type"`
	Moves       []Move     `json:"moves"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type AuthGrant struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// APIError - a non-2xx response decoded into the server's message payload.
type APIError struct {
	Status  int
	Message string
}

func (that *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", that.Status, that.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken - the bearer token sent on every subsequent request.
func (that *Client) SetToken(token string) {
	that.token = token
}

func (that *Client) Register(ctx context.Context, username, email, password string) (*AuthGrant, error) {
	var grant AuthGrant
	err := that.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &grant)
	if err != nil {
		return nil, err
	}

	that.token = grant.Token

	return &grant, nil
}

func (that *Client) Login(ctx context.Context, login, password string) (*AuthGrant, error) {
	var grant AuthGrant
	err := that.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"login":    login,
		"password": password,
	}, &grant)
	if err != nil {
		return nil, err
	}

	that.token = grant.Token

	return &grant, nil
}

func (that *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := that.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (that *Client) UpdateProfile(ctx context.Context, username, email string) (*User, error) {
	var user User
	err := that.do(ctx, http.MethodPut, "/api/auth/profile", map[string]string{
		"username": username,
		"email":    email,
	}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (that *Client) CreateGame(ctx context.Context, gameType string) (*Game, error) {
	var game Game
	err := that.do(ctx, http.MethodPost, "/api/games", map[string]string{
		"game_type": gameType,
	}, &game)
	if err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *Client) ListGames(ctx context.Context) ([]*Game, error) {
	var games []*Game
	if err := that.do(ctx, http.MethodGet, "/api/games", nil, &games); err != nil {
		return nil, err
	}

	return games, nil
}

func (that *Client) GetGame(ctx context.Context, id string) (*Game, error) {
	var game Game
	if err := that.do(ctx, http.MethodGet, "/api/games/"+id, nil, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *Client) Move(ctx context.Context, id string, row, col int) (*Game, error) {
	var game Game
	err := that.do(ctx, http.MethodPut, "/api/games/"+id+"/move", map[string]int{
		"row": row,
		"col": col,
	}, &game)
	if err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *Client) JoinGame(ctx context.Context, id string) (*Game, error) {
	var game Game
	if err := that.do(ctx, http.MethodPut, "/api/games/"+id+"/join", struct{}{}, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *Client) DeleteGame(ctx context.Context, id string) error {
	return that.do(ctx, http.MethodDelete, "/api/games/"+id, nil, nil)
}

func (that *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if that.token != "" {
		req.Header.Set("Authorization", "Bearer "+that.token)
	}

	resp, err := that.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}

		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
