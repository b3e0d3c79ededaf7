package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

type playerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type gameResponse struct {
	ID          string        `json:"id"`
	PlayerX     *playerResponse `json:"player_x"`
	PlayerO     *playerResponse `json:"player_o,omitempty"`
	Board       entity.Board  `json:"board"`
	CurrentMark string        `json:"current_mark"`
	Winner      string        `json:"winner,omitempty"`
	IsComplete  bool          `json:"is_complete"`
	GameType    string        `json:"game_type"`
	Moves       []entity.Move `json:"moves"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

func newGameResponse(detail *service.GameDetail) *gameResponse {
	response := &gameResponse{
		ID:          detail.Game.ID,
		PlayerX:     &playerResponse{ID: detail.PlayerX.ID, Username: detail.PlayerX.Username},
		Board:       detail.Game.Board,
		CurrentMark: detail.Game.CurrentMark,
		Winner:      detail.Game.Winner,
		IsComplete:  detail.Game.IsComplete,
		GameType:    detail.Game.Type,
		Moves:       detail.Game.Moves,
		CreatedAt:   detail.Game.CreatedAt,
		CompletedAt: detail.Game.CompletedAt,
	}

	if detail.PlayerO != nil {
		response.PlayerO = &playerResponse{ID: detail.PlayerO.ID, Username: detail.PlayerO.Username}
	}

	return response
}

func (that *Server) unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, messageResponse{Message: message})
}

// respondError - maps the error taxonomy to HTTP statuses. Internal errors
// are logged and surfaced generically.
func (that *Server) respondError(ctx echo.Context, err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case apperror.KindUnauthorized:
		return ctx.JSON(http.StatusUnauthorized, messageResponse{Message: err.Error()})
	case apperror.KindForbidden:
		return ctx.JSON(http.StatusForbidden, messageResponse{Message: err.Error()})
	case apperror.KindNotFound:
		return ctx.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
	case apperror.KindConflict:
		return ctx.JSON(http.StatusConflict, messageResponse{Message: err.Error()})
	default:
		that.logger.Error("request failed", "method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
	}
}
