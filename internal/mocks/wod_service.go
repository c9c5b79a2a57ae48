package mocks

import (
	"context"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// MockWodService implements service.WodService for testing.
type MockWodService struct {
	CreateWodFn func(ctx context.Context, params service.CreateWodParams) (*domain.Wod, error)
	GetWodFn    func(ctx context.Context, id domain.WodID) (*domain.Wod, error)
	UpdateWodFn func(ctx context.Context, id domain.WodID, params service.UpdateWodParams) (*domain.Wod, error)
	DeleteWodFn func(ctx context.Context, id domain.WodID) error
}

var _ service.WodService = (*MockWodService)(nil)

func (m *MockWodService) CreateWod(ctx context.Context, params service.CreateWodParams) (*domain.Wod, error) {
	if m.CreateWodFn != nil {
		return m.CreateWodFn(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m *MockWodService) GetWod(ctx context.Context, id domain.WodID) (*domain.Wod, error) {
	if m.GetWodFn != nil {
		return m.GetWodFn(ctx, id)
	}
	return nil, ErrNotImplemented
}

func (m *MockWodService) UpdateWod(ctx context.Context, id domain.WodID, params service.UpdateWodParams) (*domain.Wod, error) {
	if m.UpdateWodFn != nil {
		return m.UpdateWodFn(ctx, id, params)
	}
	return nil, ErrNotImplemented
}

func (m *MockWodService) DeleteWod(ctx context.Context, id domain.WodID) error {
	if m.DeleteWodFn != nil {
		return m.DeleteWodFn(ctx, id)
	}
	return ErrNotImplemented
}
