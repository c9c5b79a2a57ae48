package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wodlog-api/internal/api/middleware"
	"github.com/phrazzld/wodlog-api/internal/events"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/platform/memory"
	"github.com/phrazzld/wodlog-api/internal/service"
)

type testServer struct {
	router http.Handler
	logs   *logger.TestLogBuffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log, logs := logger.GetTestLogger(t)
	stores := memory.NewStores()
	athleteStore, wodStore, resultStore := stores.Athletes, stores.Wods, stores.Results

	athletes, err := service.NewAthleteService(athleteStore, resultStore, nil, log)
	require.NoError(t, err)
	wods, err := service.NewWodService(wodStore, resultStore, nil, log)
	require.NoError(t, err)
	results, err := service.NewResultService(service.ResultServiceDeps{
		Results:  resultStore,
		Athletes: athleteStore,
		Wods:     wodStore,
		Emitter:  events.NewInMemoryEventEmitter(log),
		Logger:   log,
	})
	require.NoError(t, err)
	prs, err := service.NewPRService(resultStore, nil, log)
	require.NoError(t, err)

	handlers := Handlers{
		Athletes: NewAthleteHandler(athletes, log),
		Wods:     NewWodHandler(wods, log),
		Results:  NewResultHandler(results, prs, log),
	}

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Route("/api", handlers.Routes())

	return &testServer{router: r, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func (s *testServer) createAthlete(t *testing.T, name, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/athletes", CreateAthleteRequest{Name: name, Email: email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func (s *testServer) createWod(t *testing.T, id, name, wodType string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/wods", CreateWodRequest{
		ID:          id,
		Name:        name,
		Description: "Workout " + name,
		Type:        wodType,
		Date:        "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *testServer) recordResult(t *testing.T, athleteID, wodID string, score ScoreRequest) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/results", RecordResultRequest{
		AthleteID: athleteID,
		WodID:     wodID,
		Score:     score,
		IsRx:      true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func float(v float64) *float64 { return &v }
