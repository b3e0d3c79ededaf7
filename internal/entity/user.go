package entity

import "time"

// Stats - cumulative per-user game counters, credited once per completed game.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	GamesWon    int `json:"games_won"`
	GamesLost   int `json:"games_lost"`
	GamesDrawn  int `json:"games_drawn"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Stats        Stats     `json:"stats"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public - returns a copy safe to expose outside the identity layer.
func (that *User) Public() *User {
	public := *that
	public.PasswordHash = ""

	return &public
}
