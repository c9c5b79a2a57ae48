package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/events"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/platform/memory"
)

var errBoom = errors.New("connection reset by peer")

// stubIDs hands out the queued identifiers first, then random UUIDs.
type stubIDs struct {
	mu    sync.Mutex
	queue []string
}

func (g *stubIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.queue) == 0 {
		return uuid.NewString()
	}
	id := g.queue[0]
	g.queue = g.queue[1:]
	return id
}

type cacheKey struct{ athlete, wod string }

// mapCache is an in-process PRCache that counts calls.
type mapCache struct {
	mu          sync.Mutex
	entries     map[cacheKey]domain.ResultID
	gens        map[cacheKey]int64
	getErr      error
	setErr      error
	gets        int
	sets        int
	refused     int
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[cacheKey]domain.ResultID), gens: make(map[cacheKey]int64)}
}

func (c *mapCache) Get(_ context.Context, athleteID domain.AthleteID, wodID domain.WodID) (domain.ResultID, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return domain.ResultID{}, 0, false, c.getErr
	}
	key := cacheKey{athleteID.String(), wodID.String()}
	id, ok := c.entries[key]
	return id, c.gens[key], ok, nil
}

func (c *mapCache) Set(
	_ context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
	gen int64,
	resultID domain.ResultID,
) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return false, c.setErr
	}
	key := cacheKey{athleteID.String(), wodID.String()}
	if c.gens[key] != gen {
		c.refused++
		return false, nil
	}
	c.entries[key] = resultID
	return true, nil
}

func (c *mapCache) Invalidate(_ context.Context, athleteID domain.AthleteID, wodID domain.WodID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	key := cacheKey{athleteID.String(), wodID.String()}
	c.gens[key]++
	delete(c.entries, key)
	return nil
}

func (c *mapCache) has(athleteID domain.AthleteID, wodID domain.WodID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[cacheKey{athleteID.String(), wodID.String()}]
	return ok
}

// recordingHandler captures emitted events.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.Event
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

// failingResultStore wraps a result store and fails the configured calls.
type failingResultStore struct {
	*memory.ResultStore
	findErr   error
	existsErr error
}

func (s *failingResultStore) FindByAthleteAndWod(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.ResultStore.FindByAthleteAndWod(ctx, athleteID, wodID)
}

func (s *failingResultStore) ExistsForAthlete(ctx context.Context, athleteID domain.AthleteID) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.ResultStore.ExistsForAthlete(ctx, athleteID)
}

// blindResultStore reports no earlier results for any athlete and workout,
// running onFind first when it is set.
type blindResultStore struct {
	*memory.ResultStore
	onFind func()
}

func (s *blindResultStore) FindByAthleteAndWod(context.Context, domain.AthleteID, domain.WodID) ([]*domain.Result, error) {
	if s.onFind != nil {
		s.onFind()
	}
	return []*domain.Result{}, nil
}

// staleWodStore never finds a WOD by id.
type staleWodStore struct {
	*memory.WodStore
}

func (s *staleWodStore) FindByID(context.Context, domain.WodID) (*domain.Wod, error) {
	return nil, nil
}

// hookedResultStore runs afterFind once, after FindByAthleteAndWod has read
// the results but before they are returned.
type hookedResultStore struct {
	*memory.ResultStore
	once      sync.Once
	afterFind func()
}

func (s *hookedResultStore) FindByAthleteAndWod(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	results, err := s.ResultStore.FindByAthleteAndWod(ctx, athleteID, wodID)
	s.once.Do(s.afterFind)
	return results, err
}

// noResultsStore reports that no athlete or WOD has results.
type noResultsStore struct {
	*memory.ResultStore
}

func (s *noResultsStore) ExistsForAthlete(context.Context, domain.AthleteID) (bool, error) {
	return false, nil
}

func (s *noResultsStore) ExistsForWod(context.Context, domain.WodID) (bool, error) {
	return false, nil
}

// fixture wires every service to fresh in-memory stores.
type fixture struct {
	athleteStore *memory.AthleteStore
	wodStore     *memory.WodStore
	resultStore  *memory.ResultStore
	ids          *stubIDs
	cache        *mapCache
	emitter      *events.InMemoryEventEmitter
	recorder     *recordingHandler
	logs         *logger.TestLogBuffer

	athletes AthleteService
	wods     WodService
	results  ResultService
	prs      *PRService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, logs := logger.GetTestLogger(t)
	stores := memory.NewStores()
	f := &fixture{
		athleteStore: stores.Athletes,
		wodStore:     stores.Wods,
		resultStore:  stores.Results,
		ids:          &stubIDs{},
		cache:        newMapCache(),
		recorder:     &recordingHandler{},
		logs:         logs,
	}
	f.emitter = events.NewInMemoryEventEmitter(log)
	f.emitter.RegisterHandler(f.recorder)
	f.emitter.RegisterHandler(NewPRCacheInvalidator(f.cache))

	var err error
	f.athletes, err = NewAthleteService(f.athleteStore, f.resultStore, f.ids, log)
	require.NoError(t, err)
	f.wods, err = NewWodService(f.wodStore, f.resultStore, f.ids, log)
	require.NoError(t, err)
	f.results, err = NewResultService(ResultServiceDeps{
		Results:  f.resultStore,
		Athletes: f.athleteStore,
		Wods:     f.wodStore,
		Emitter:  f.emitter,
		IDs:      f.ids,
		Logger:   log,
	})
	require.NoError(t, err)
	f.prs, err = NewPRService(f.resultStore, f.cache, log)
	require.NoError(t, err)

	return f
}

func (f *fixture) createAthlete(t *testing.T, name, email string) *domain.Athlete {
	t.Helper()
	athlete, err := f.athletes.CreateAthlete(context.Background(), name, email)
	require.NoError(t, err)
	return athlete
}

func (f *fixture) createWod(t *testing.T, id, name string) *domain.Wod {
	t.Helper()
	wod, err := f.wods.CreateWod(context.Background(), CreateWodParams{
		ID:          id,
		Name:        name,
		Description: "21-15-9 thrusters and pull-ups",
		Type:        "FOR_TIME",
	})
	require.NoError(t, err)
	return wod
}

func (f *fixture) recordTime(t *testing.T, athlete *domain.Athlete, wod *domain.Wod, seconds float64) *domain.Result {
	t.Helper()
	result, err := f.results.RecordResult(context.Background(), RecordResultParams{
		AthleteID:    athlete.ID().String(),
		WodID:        wod.ID().String(),
		ScoreType:    "TIME",
		PrimaryValue: seconds,
		IsRx:         true,
	})
	require.NoError(t, err)
	return result
}
