package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (that *Server) handleRegister(ctx echo.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	user, err := that.users.Register(ctx.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return that.respondError(ctx, err)
	}

	token, err := that.auth.GenerateToken(user.ID)
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, authResponse{Token: token, User: user.Public()})
}

func (that *Server) handleLogin(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	user, err := that.users.Login(ctx.Request().Context(), req.Login, req.Password)
	if err != nil {
		return that.respondError(ctx, err)
	}

	token, err := that.auth.GenerateToken(user.ID)
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, authResponse{Token: token, User: user.Public()})
}

func (that *Server) handleGetProfile(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, currentUser(ctx).Public())
}

func (that *Server) handleUpdateProfile(ctx echo.Context) error {
	var req updateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	user, err := that.users.UpdateProfile(ctx.Request().Context(), currentUser(ctx).ID, req.Username, req.Email)
	if err != nil {
		return that.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, user.Public())
}
