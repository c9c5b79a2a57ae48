package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/wodlog-api/internal/domain"
)

// MockPRReader is a testify/mock implementation of the PR lookup used by the
// result handler.
type MockPRReader struct {
	mock.Mock
}

// GetPR is a mock implementation of service.PRService.GetPR.
func (m *MockPRReader) GetPR(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) (*domain.Result, error) {
	args := m.Called(ctx, athleteID, wodID)
	if result, ok := args.Get(0).(*domain.Result); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}
