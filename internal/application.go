package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
)

var (
	ErrAddrNotFound      = errors.New("redis address string is empty")
	ErrSecretKeyNotFound = errors.New("jwt secret key is empty")
	ErrUnknownBackend    = errors.New("unknown storage backend")
)

// RunApp - wires the storage backend, repositories, and services, then
// serves HTTP until a termination signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.JWTSecretKey == "" {
		return ErrSecretKeyNotFound
	}

	store, err := newStore(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not initialize storage: %w", err)
	}
	log.Info("Storage backend ready", "backend", conf.StorageBackend)

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	userRepo := repository.NewUserRepository(store)
	gameRepo := repository.NewGameRepository(store)

	authService := service.NewAuthService(conf.JWTSecretKey, conf.TokenTTL)
	userService := service.NewUserService(userRepo, authService)
	gameService := service.NewGameService(logger, gameRepo, userRepo)

	server := rest.New(logger, authService, userService, gameService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application stopped")

	return nil
}

func newStore(ctx context.Context, conf *config.Config) (storage.Store, error) {
	switch conf.StorageBackend {
	case config.BackendRedis:
		addr := conf.Redis.GetRedisAddr()
		if addr == "" {
			return nil, ErrAddrNotFound
		}
		return storage.NewRedisStorage(ctx, addr)
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, conf.StorageBackend)
	}
}
