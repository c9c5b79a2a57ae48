package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

type storedResult struct {
	result domain.Result
	seq    uint64
}

// ResultStore is an in-memory store.ResultStore. A standalone store does not
// check that the referenced athlete and WOD exist; one built by NewStores
// does.
type ResultStore struct {
	mu      sync.RWMutex
	results map[domain.ResultID]storedResult
	nextSeq uint64

	athletes *AthleteStore
	wods     *WodStore
}

var _ store.ResultStore = (*ResultStore)(nil)

// NewResultStore creates an empty ResultStore.
func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[domain.ResultID]storedResult)}
}

// Save implements store.ResultStore. Replacing a result keeps its original
// position in listing order.
func (s *ResultStore) Save(ctx context.Context, result *domain.Result) error {
	// Lock order is athletes, wods, results. The read locks keep the
	// referenced rows from being deleted until the result is stored.
	if s.athletes != nil {
		s.athletes.mu.RLock()
		defer s.athletes.mu.RUnlock()
		if _, ok := s.athletes.athletes[result.AthleteID()]; !ok {
			return fmt.Errorf("%w: athlete %s", store.ErrInvalidReference, result.AthleteID())
		}
	}
	if s.wods != nil {
		s.wods.mu.RLock()
		defer s.wods.mu.RUnlock()
		if _, ok := s.wods.wods[result.WodID()]; !ok {
			return fmt.Errorf("%w: wod %s", store.ErrInvalidReference, result.WodID())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stored := range s.results {
		if id.Equals(result.ID()) ||
			!stored.result.AthleteID().Equals(result.AthleteID()) ||
			!stored.result.WodID().Equals(result.WodID()) {
			continue
		}
		if stored.result.Score().Kind() != result.Score().Kind() {
			return store.ErrScoreKindMismatch
		}
	}

	seq := s.nextSeq
	if existing, ok := s.results[result.ID()]; ok {
		seq = existing.seq
	} else {
		s.nextSeq++
	}

	s.results[result.ID()] = storedResult{result: *result, seq: seq}
	return nil
}

// FindByID implements store.ResultStore.
func (s *ResultStore) FindByID(ctx context.Context, id domain.ResultID) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.results[id]
	if !ok {
		return nil, nil
	}
	result := stored.result
	return &result, nil
}

// FindByAthleteAndWod implements store.ResultStore. Results come back in
// completion order, ties broken by insertion order.
func (s *ResultStore) FindByAthleteAndWod(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	s.mu.RLock()
	matches := make([]storedResult, 0)
	for _, stored := range s.results {
		if stored.result.AthleteID().Equals(athleteID) && stored.result.WodID().Equals(wodID) {
			matches = append(matches, stored)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matches, func(a, b storedResult) int {
		if c := a.result.CompletedAt().Compare(b.result.CompletedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]*domain.Result, len(matches))
	for i := range matches {
		out[i] = &matches[i].result
	}
	return out, nil
}

// ExistsForAthlete implements store.ResultStore.
func (s *ResultStore) ExistsForAthlete(ctx context.Context, athleteID domain.AthleteID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.results {
		if stored.result.AthleteID().Equals(athleteID) {
			return true, nil
		}
	}
	return false, nil
}

// ExistsForWod implements store.ResultStore.
func (s *ResultStore) ExistsForWod(ctx context.Context, wodID domain.WodID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.results {
		if stored.result.WodID().Equals(wodID) {
			return true, nil
		}
	}
	return false, nil
}

// Delete implements store.ResultStore.
func (s *ResultStore) Delete(ctx context.Context, id domain.ResultID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, id)
	return nil
}
