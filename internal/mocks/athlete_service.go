package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// MockAthleteService implements service.AthleteService for testing.
type MockAthleteService struct {
	CreateAthleteFn func(ctx context.Context, name, email string) (*domain.Athlete, error)
	GetAthleteFn    func(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error)
	UpdateAthleteFn func(ctx context.Context, id domain.AthleteID, params service.UpdateAthleteParams) (*domain.Athlete, error)
	DeleteAthleteFn func(ctx context.Context, id domain.AthleteID) error

	mu    sync.Mutex
	calls []string
}

var _ service.AthleteService = (*MockAthleteService)(nil)

func (m *MockAthleteService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockAthleteService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockAthleteService) CreateAthlete(ctx context.Context, name, email string) (*domain.Athlete, error) {
	m.record("CreateAthlete")
	if m.CreateAthleteFn != nil {
		return m.CreateAthleteFn(ctx, name, email)
	}
	return nil, ErrNotImplemented
}

func (m *MockAthleteService) GetAthlete(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error) {
	m.record("GetAthlete")
	if m.GetAthleteFn != nil {
		return m.GetAthleteFn(ctx, id)
	}
	return nil, ErrNotImplemented
}

func (m *MockAthleteService) UpdateAthlete(
	ctx context.Context,
	id domain.AthleteID,
	params service.UpdateAthleteParams,
) (*domain.Athlete, error) {
	m.record("UpdateAthlete")
	if m.UpdateAthleteFn != nil {
		return m.UpdateAthleteFn(ctx, id, params)
	}
	return nil, ErrNotImplemented
}

func (m *MockAthleteService) DeleteAthlete(ctx context.Context, id domain.AthleteID) error {
	m.record("DeleteAthlete")
	if m.DeleteAthleteFn != nil {
		return m.DeleteAthleteFn(ctx, id)
	}
	return ErrNotImplemented
}
