package rest

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const userContextKey = "authenticated-user"

// requireUser - resolves the bearer token to a stored user or rejects the
// request; handlers behind it can rely on currentUser being set.
func (that *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return that.unauthorized(ctx, "no token, authorization denied")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return that.unauthorized(ctx, "invalid token format")
		}

		userID, err := that.auth.ParseToken(parts[1])
		if err != nil {
			return that.unauthorized(ctx, "token is not valid")
		}

		user, err := that.users.GetByID(ctx.Request().Context(), userID)
		if err != nil {
			return that.unauthorized(ctx, "token is not valid")
		}

		ctx.Set(userContextKey, user)

		return next(ctx)
	}
}

func currentUser(ctx echo.Context) *entity.User {
	user, _ := ctx.Get(userContextKey).(*entity.User)
	return user
}
