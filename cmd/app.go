package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/config"
	"github.com/grindboard/practice-service/internal/events"
	"github.com/grindboard/practice-service/internal/repositories"
	"github.com/grindboard/practice-service/internal/repositories/memory"
	"github.com/grindboard/practice-service/internal/repositories/postgres"
	"github.com/grindboard/practice-service/internal/services"
	"github.com/grindboard/practice-service/internal/validator"
	"github.com/grindboard/practice-service/pkg"
)

// application holds everything a command needs, wired from config
type application struct {
	cfg         *config.Config
	logger      *slog.Logger
	repoManager repositories.RepositoryManager
	redisClient *redis.Client
	publisher   events.Publisher
	services    services.ServiceManager
}

func newApplication(ctx context.Context, logOutput io.Writer) (*application, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	app := &application{cfg: cfg, logger: logger}

	// Redis is optional; without it every cache helper executes directly
	if cfg.Redis.URL != "" {
		app.redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled", "error", err)
			app.redisClient = nil
		}
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		app.repoManager = memory.NewManager()
	default:
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			app.closeRedis()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		app.repoManager = postgres.NewRepositoryManager(postgres.RepositoryConfig{
			DB:          db,
			RedisClient: app.redisClient,
		})
	}
	if err := app.repoManager.Initialize(); err != nil {
		app.closeRedis()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	app.publisher, err = events.NewPublisher(cfg.EventsConfig(), logger)
	if err != nil {
		_ = app.repoManager.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize events: %w", err)
	}

	app.services = services.NewServiceManager(
		app.repoManager.GetRepository(),
		logger,
		validator.New(),
		app.publisher,
		cache.NewCacheManager(app.redisClient),
	)
	if err := app.services.Initialize(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("Application initialized", "driver", cfg.Database.Driver, "cache", app.redisClient != nil)
	return app, nil
}

// Close releases services, then the store
func (a *application) Close(ctx context.Context) error {
	var errs []error
	if a.services != nil {
		errs = append(errs, a.services.Shutdown(ctx))
	}
	if a.repoManager != nil {
		errs = append(errs, a.repoManager.Shutdown(ctx))
	}
	// The postgres repository owns the client it was given
	if a.cfg.Database.Driver == config.DriverMemory {
		a.closeRedis()
	}
	return errors.Join(errs...)
}

func (a *application) closeRedis() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
}
