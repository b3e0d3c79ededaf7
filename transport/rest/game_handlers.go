package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createGameRequest struct {
	GameType string `json:"game_type"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func (that *Server) handleCreateGame(ctx echo.Context) error {
	var req createGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	detail, err := that.games.Create(ctx.Request().Context(), currentUser(ctx).ID, req.GameType)
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(detail))
}

func (that *Server) handleListGames(ctx echo.Context) error {
	details, err := that.games.List(ctx.Request().Context(), currentUser(ctx).ID)
	if err != nil {
		return that.respondError(ctx, err)
	}

	responses := make([]*gameResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, newGameResponse(detail))
	}

	return ctx.JSON(http.StatusOK, responses)
}

func (that *Server) handleGetGame(ctx echo.Context) error {
	detail, err := that.games.Get(ctx.Request().Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(detail))
}

func (that *Server) handleMove(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	if req.Row == nil || req.Col == nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid move position"})
	}

	detail, err := that.games.Move(ctx.Request().Context(), currentUser(ctx).ID, ctx.Param("id"), *req.Row, *req.Col)
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(detail))
}

func (that *Server) handleJoin(ctx echo.Context) error {
	detail, err := that.games.Join(ctx.Request().Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(detail))
}

func (that *Server) handleDeleteGame(ctx echo.Context) error {
	if err := that.games.Delete(ctx.Request().Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, messageResponse{Message: "game deleted"})
}
