package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
)

const shutdownTimeout = 10 * time.Second

type authService interface {
	ParseToken(tokenString string) (string, error)
	GenerateToken(userID string) (string, error)
}

type userService interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Login(ctx context.Context, login, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*entity.User, error)
}

type gameService interface {
	Create(ctx context.Context, userID, gameType string) (*service.GameDetail, error)
	List(ctx context.Context, userID string) ([]*service.GameDetail, error)
	Get(ctx context.Context, userID, gameID string) (*service.GameDetail, error)
	Move(ctx context.Context, userID, gameID string, row, col int) (*service.GameDetail, error)
	Join(ctx context.Context, userID, gameID string) (*service.GameDetail, error)
	Delete(ctx context.Context, userID, gameID string) error
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo

	auth  authService
	users userService
	games gameService
}

func New(logger *slog.Logger, auth authService, users userService, games gameService) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		echo:   echo.New(),
		auth:   auth,
		users:  users,
		games:  games,
	}

	server.echo.HideBanner = true
	server.echo.Use(middleware.Recover())
	server.echo.Use(middleware.CORS())
	server.echo.Use(server.logRequests)

	server.registerRoutes()

	return server
}

func (that *Server) registerRoutes() {
	api := that.echo.Group("/api")

	api.GET("/ping", that.handlePing)

	auth := api.Group("/auth")
	auth.POST("/register", that.handleRegister)
	auth.POST("/login", that.handleLogin)
	auth.GET("/profile", that.handleGetProfile, that.requireUser)
	auth.PUT("/profile", that.handleUpdateProfile, that.requireUser)

	games := api.Group("/games", that.requireUser)
	games.POST("", that.handleCreateGame)
	games.GET("", that.handleListGames)
	games.GET("/:id", that.handleGetGame)
	games.PUT("/:id/move", that.handleMove)
	games.PUT("/:id/join", that.handleJoin)
	games.DELETE("/:id", that.handleDeleteGame)
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	errCh := make(chan error, 1)

	go func() {
		if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		that.logger.Info("request",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"status", ctx.Response().Status,
			"duration", time.Since(start),
		)

		return err
	}
}

func (that *Server) handlePing(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"message": "pong"})
}
