package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/wodlog-api/internal/api"
	apiMiddleware "github.com/phrazzld/wodlog-api/internal/api/middleware"
	"github.com/phrazzld/wodlog-api/internal/api/shared"
	"github.com/phrazzld/wodlog-api/internal/platform/metrics"
	"github.com/phrazzld/wodlog-api/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string            `json:"status"`
	Backend string            `json:"backend"`
	Checks  map[string]string `json:"checks,omitempty"`
	Checked time.Time         `json:"checked_at"`
}

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	handlers := api.Handlers{
		Athletes: api.NewAthleteHandler(app.athleteService, app.logger),
		Wods:     api.NewWodHandler(app.wodService, app.logger),
		Results:  api.NewResultHandler(app.resultService, app.prService, app.logger),
	}
	r.Route("/api", handlers.Routes())

	r.Get("/health", app.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// handleHealth reports 200 when every configured dependency answers and 503
// otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:  "ok",
		Backend: app.config.Store.Backend,
		Checks:  map[string]string{},
		Checked: time.Now().UTC(),
	}

	if app.db != nil {
		resp.Checks["database"] = app.check(ctx, "database", app.db.PingContext)
	}
	if app.redis != nil {
		resp.Checks["redis"] = app.check(ctx, "redis", func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	for _, result := range resp.Checks {
		if result != "ok" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}

func (app *application) check(ctx context.Context, name string, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		app.logger.Warn("health check failed",
			slog.String("dependency", name),
			slog.String("error", redact.Error(err)))
		return "unavailable"
	}
	return "ok"
}
