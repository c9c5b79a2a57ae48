package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wodlog-api/internal/config"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeoutSeconds: 1},
		Store:  config.StoreConfig{Backend: config.BackendMemory},
		Database: config.DatabaseConfig{
			MaxOpenConns: 5,
			MaxIdleConns: 1,
		},
		Cache: config.CacheConfig{PRTTLSeconds: 60},
	}
}

func newTestApp(t *testing.T) (*application, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), memoryConfig(), log)
	require.NoError(t, err)
	return app, buf
}

func send(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestNewApplication_MemoryBackend(t *testing.T) {
	app, buf := newTestApp(t)

	assert.Nil(t, app.db)
	assert.Nil(t, app.redis)
	assert.NotNil(t, app.athleteService)
	assert.NotNil(t, app.prService)
	logger.AssertLogContains(t, buf, "Application initialized successfully")
}

func TestNewApplication_UnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = "sqlite"
	log, _ := logger.GetTestLogger(t)

	_, err := newApplication(context.Background(), cfg, log)
	assert.ErrorContains(t, err, `unsupported store backend "sqlite"`)
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.setupRouter()

	rec := send(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["backend"])
}

func TestRouter_EndToEnd(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.setupRouter()

	rec := send(t, router, http.MethodPost, "/api/athletes", map[string]any{
		"name": "Annie", "email": "annie@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var athlete map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &athlete))
	athleteID := athlete["id"].(string)

	rec = send(t, router, http.MethodPost, "/api/wods", map[string]any{
		"id": "grace", "name": "Grace", "description": "30 clean and jerks", "type": "FOR_TIME",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, seconds := range []float64{190, 165, 172} {
		rec = send(t, router, http.MethodPost, "/api/results", map[string]any{
			"athlete_id": athleteID,
			"wod_id":     "grace",
			"score":      map[string]any{"type": "TIME", "primary_value": seconds},
			"is_rx":      true,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = send(t, router, http.MethodGet, "/api/athletes/"+athleteID+"/wods/grace/pr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pr struct {
		Result struct {
			Display string `json:"display"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pr))
	assert.Equal(t, "2:45", pr.Result.Display)

	rec = send(t, router, http.MethodDelete, "/api/wods/grace", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	metricsBody := rec.Body.String()
	assert.Contains(t, metricsBody, `wodlog_http_requests_total{method="POST",route="/api/results`)
	assert.Contains(t, metricsBody, `wodlog_results_recorded_total{score_type="TIME"}`)
	assert.Contains(t, metricsBody, `wodlog_pr_lookups_total{outcome="computed"}`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.setupRouter()

	rec := send(t, router, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	app, buf := newTestApp(t)
	app.config.Server.Port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	addr := "http://127.0.0.1:" + itoa(app.config.Server.Port) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	logger.AssertLogContains(t, buf, "Server shutdown completed")
}

func TestRun_MigrateRequiresDatabaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
server:
  port: 9090
  log_level: error
store:
  backend: memory
`)), 0o600))

	err := run(context.Background(), path, "up")
	assert.ErrorIs(t, err, errNoDatabaseURL)
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: postgres\n"), 0o600))

	err := run(context.Background(), path, "")
	assert.ErrorContains(t, err, "failed to load configuration")
}
