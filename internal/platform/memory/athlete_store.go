package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// AthleteStore is an in-memory store.AthleteStore.
type AthleteStore struct {
	mu       sync.RWMutex
	athletes map[domain.AthleteID]domain.Athlete

	// results is set by NewStores; DeleteByID then refuses athletes that
	// still have results.
	results *ResultStore
}

var _ store.AthleteStore = (*AthleteStore)(nil)

// NewAthleteStore creates an empty AthleteStore.
func NewAthleteStore() *AthleteStore {
	return &AthleteStore{athletes: make(map[domain.AthleteID]domain.Athlete)}
}

// Save implements store.AthleteStore.
func (s *AthleteStore) Save(ctx context.Context, athlete *domain.Athlete) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.athletes {
		if !id.Equals(athlete.ID()) && existing.Email().Equals(athlete.Email()) {
			return store.ErrEmailExists
		}
	}

	s.athletes[athlete.ID()] = *athlete
	return nil
}

// FindByID implements store.AthleteStore.
func (s *AthleteStore) FindByID(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	athlete, ok := s.athletes[id]
	if !ok {
		return nil, nil
	}
	return &athlete, nil
}

// FindByEmail implements store.AthleteStore.
func (s *AthleteStore) FindByEmail(ctx context.Context, email domain.AthleteEmail) (*domain.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, athlete := range s.athletes {
		if athlete.Email().Equals(email) {
			found := athlete
			return &found, nil
		}
	}
	return nil, nil
}

// DeleteByID implements store.AthleteStore.
func (s *AthleteStore) DeleteByID(ctx context.Context, id domain.AthleteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.results != nil {
		if has, _ := s.results.ExistsForAthlete(ctx, id); has {
			return fmt.Errorf("%w: athlete %s has results", store.ErrInvalidReference, id)
		}
	}

	delete(s.athletes, id)
	return nil
}
