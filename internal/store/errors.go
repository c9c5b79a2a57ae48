package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
//
// Absence is not an error: lookups return (nil, nil) when nothing matches.
var (
	// ErrDuplicate is returned when an operation would violate a uniqueness
	// rule, for example two athletes sharing an email.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when an entity points at another entity
	// that does not exist, or when a delete would orphan dependent rows.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidEntity is returned when persisted data can no longer be
	// rebuilt into a valid domain value.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrEmailExists indicates that another athlete already uses the email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrWodNameExists indicates that another WOD already uses the name.
	ErrWodNameExists = fmt.Errorf("%w: wod name", ErrDuplicate)

	// ErrWodIDExists indicates that a WOD with the ID is already stored.
	ErrWodIDExists = fmt.Errorf("%w: wod id", ErrDuplicate)

	// ErrScoreKindMismatch is returned when a result's score kind differs from
	// the results already stored for the same athlete and WOD.
	ErrScoreKindMismatch = errors.New("score kind differs from existing results")
)

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "athlete", "result")
	Operation string // The operation that failed (e.g., "save", "find")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
