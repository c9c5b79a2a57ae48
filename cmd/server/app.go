package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/wodlog-api/internal/config"
	"github.com/phrazzld/wodlog-api/internal/events"
	"github.com/phrazzld/wodlog-api/internal/platform/memory"
	"github.com/phrazzld/wodlog-api/internal/platform/postgres"
	"github.com/phrazzld/wodlog-api/internal/platform/redis"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/service"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Connections, nil when the backend does not use them.
	db    *sql.DB
	redis *goredis.Client

	athleteStore store.AthleteStore
	wodStore     store.WodStore
	resultStore  store.ResultStore

	athleteService service.AthleteService
	wodService     service.WodService
	resultService  service.ResultService
	prService      *service.PRService

	eventEmitter *events.InMemoryEventEmitter
}

// newApplication wires stores, cache, event handlers and services according
// to cfg. Connections opened before a failure are closed again.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	var prCache service.PRCache
	if cfg.Cache.CacheEnabled() {
		app.redis, err = redis.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		ttl := time.Duration(cfg.Cache.PRTTLSeconds) * time.Second
		cache := redis.NewPRCache(app.redis, ttl, logger)
		app.eventEmitter.RegisterHandler(service.NewPRCacheInvalidator(cache))
		prCache = cache
		logger.Info("PR cache enabled", slog.Duration("ttl", ttl))
	}

	ids := service.UUIDGenerator{}

	app.athleteService, err = service.NewAthleteService(app.athleteStore, app.resultStore, ids, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create athlete service: %w", err)
	}
	app.wodService, err = service.NewWodService(app.wodStore, app.resultStore, ids, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create wod service: %w", err)
	}
	app.resultService, err = service.NewResultService(service.ResultServiceDeps{
		Results:  app.resultStore,
		Athletes: app.athleteStore,
		Wods:     app.wodStore,
		Emitter:  app.eventEmitter,
		IDs:      ids,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result service: %w", err)
	}
	app.prService, err = service.NewPRService(app.resultStore, prCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create pr service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.athleteStore = postgres.NewPostgresAthleteStore(db, app.logger)
		app.wodStore = postgres.NewPostgresWodStore(db, app.logger)
		app.resultStore = postgres.NewPostgresResultStore(db, app.logger)

	case config.BackendMemory:
		stores := memory.NewStores()
		app.athleteStore = stores.Athletes
		app.wodStore = stores.Wods
		app.resultStore = stores.Results

	default:
		return fmt.Errorf("unsupported store backend %q", app.config.Store.Backend)
	}

	app.logger.Info("Store backend ready", slog.String("backend", app.config.Store.Backend))
	return nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", slog.String("error", redact.Error(err)))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", redact.Error(err)))
		}
	}

	app.logger.Info("Application shutdown completed")
}
