package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// WodStore is an in-memory store.WodStore. Name uniqueness is
// case-insensitive, matching the unique index used by the Postgres store.
type WodStore struct {
	mu   sync.RWMutex
	wods map[domain.WodID]domain.Wod

	// results is set by NewStores; DeleteByID then refuses WODs that still
	// have results.
	results *ResultStore
}

var _ store.WodStore = (*WodStore)(nil)

// NewWodStore creates an empty WodStore.
func NewWodStore() *WodStore {
	return &WodStore{wods: make(map[domain.WodID]domain.Wod)}
}

// Save implements store.WodStore.
func (s *WodStore) Save(ctx context.Context, wod *domain.Wod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(wod) {
		return store.ErrWodNameExists
	}

	s.wods[wod.ID()] = *wod
	return nil
}

// Create implements store.WodStore.
func (s *WodStore) Create(ctx context.Context, wod *domain.Wod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wods[wod.ID()]; ok {
		return store.ErrWodIDExists
	}
	if s.nameTakenLocked(wod) {
		return store.ErrWodNameExists
	}

	s.wods[wod.ID()] = *wod
	return nil
}

func (s *WodStore) nameTakenLocked(wod *domain.Wod) bool {
	for id, existing := range s.wods {
		if !id.Equals(wod.ID()) && sameName(existing.Name(), wod.Name()) {
			return true
		}
	}
	return false
}

// FindByID implements store.WodStore.
func (s *WodStore) FindByID(ctx context.Context, id domain.WodID) (*domain.Wod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wod, ok := s.wods[id]
	if !ok {
		return nil, nil
	}
	return &wod, nil
}

// ExistsByName implements store.WodStore.
func (s *WodStore) ExistsByName(ctx context.Context, name domain.WodName) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, wod := range s.wods {
		if sameName(wod.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

// DeleteByID implements store.WodStore.
func (s *WodStore) DeleteByID(ctx context.Context, id domain.WodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.results != nil {
		if has, _ := s.results.ExistsForWod(ctx, id); has {
			return fmt.Errorf("%w: wod %s has results", store.ErrInvalidReference, id)
		}
	}

	delete(s.wods, id)
	return nil
}

func sameName(a, b domain.WodName) bool {
	return strings.EqualFold(a.String(), b.String())
}
