package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyValue is returned when a required value is empty or whitespace only.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrOutOfRange is returned when a length or magnitude falls outside its bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidScoreKind is returned when a score kind tag is not recognised.
	ErrInvalidScoreKind = errors.New("invalid score kind")

	// ErrInvalidWodType is returned when a workout type tag is not recognised.
	ErrInvalidWodType = errors.New("invalid workout type")

	// ErrIncompatibleScores is the panic value (wrapped) raised when two scores
	// of different kinds are compared. It signals a caller bug, not bad input.
	ErrIncompatibleScores = errors.New("cannot compare scores of different kinds")
)

// ValidationError describes malformed input rejected by a constructor.
// Field names the offending input when known.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// err is an optional sentinel describing the failure category.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the failure category, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match so callers can test the whole family at once.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
