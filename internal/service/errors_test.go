package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	validation := domain.NewValidationError("name", "is required", domain.ErrEmptyValue)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "sentinel passes through", err: ErrWodNotFound, want: ErrWodNotFound},
		{name: "wrapped sentinel unwraps", err: errors.Join(errBoom, ErrAthleteHasResults), want: ErrAthleteHasResults},
		{name: "store email conflict", err: store.ErrEmailExists, want: ErrEmailInUse},
		{name: "store wod name conflict", err: store.NewStoreError("wod", "save", "duplicate", store.ErrWodNameExists), want: ErrWodNameTaken},
		{name: "validation error passes through", err: validation, want: validation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewServiceError("op", "msg", tt.err))
		})
	}
}

func TestNewServiceError_WrapsUnexpected(t *testing.T) {
	t.Parallel()

	err := NewServiceError("record_result", "failed to save result", errBoom)

	var serviceErr *ServiceError
	assert.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "record_result", serviceErr.Operation)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "record_result failed: failed to save result: connection reset by peer", err.Error())

	assert.NoError(t, NewServiceError("op", "msg", nil))
	assert.Equal(t, "op failed: msg", (&ServiceError{Operation: "op", Message: "msg"}).Error())
}
