package mocks

import (
	"context"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// MockResultService implements service.ResultService for testing.
type MockResultService struct {
	RecordResultFn func(ctx context.Context, params service.RecordResultParams) (*domain.Result, error)
	GetResultFn    func(ctx context.Context, id domain.ResultID) (*domain.Result, error)
	ListResultsFn  func(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) ([]*domain.Result, error)
	DeleteResultFn func(ctx context.Context, id domain.ResultID) error
}

var _ service.ResultService = (*MockResultService)(nil)

func (m *MockResultService) RecordResult(ctx context.Context, params service.RecordResultParams) (*domain.Result, error) {
	if m.RecordResultFn != nil {
		return m.RecordResultFn(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m *MockResultService) GetResult(ctx context.Context, id domain.ResultID) (*domain.Result, error) {
	if m.GetResultFn != nil {
		return m.GetResultFn(ctx, id)
	}
	return nil, ErrNotImplemented
}

func (m *MockResultService) ListResults(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	if m.ListResultsFn != nil {
		return m.ListResultsFn(ctx, athleteID, wodID)
	}
	return nil, ErrNotImplemented
}

func (m *MockResultService) DeleteResult(ctx context.Context, id domain.ResultID) error {
	if m.DeleteResultFn != nil {
		return m.DeleteResultFn(ctx, id)
	}
	return ErrNotImplemented
}
