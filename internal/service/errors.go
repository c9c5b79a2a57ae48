package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// Sentinel errors returned by the services. Callers check them with
// errors.Is; the API layer maps each one to an HTTP status code.
var (
	// ErrAthleteNotFound indicates the referenced athlete does not exist.
	ErrAthleteNotFound = errors.New("athlete not found")

	// ErrWodNotFound indicates the referenced workout does not exist.
	ErrWodNotFound = errors.New("wod not found")

	// ErrResultNotFound indicates the referenced result does not exist.
	ErrResultNotFound = errors.New("result not found")

	// ErrEmailInUse indicates another athlete is registered with the email.
	ErrEmailInUse = errors.New("email already in use")

	// ErrWodNameTaken indicates another workout already uses the name.
	ErrWodNameTaken = errors.New("wod name already exists")

	// ErrWodIDTaken indicates a workout with the requested identifier exists.
	ErrWodIDTaken = errors.New("wod id already exists")

	// ErrAthleteHasResults indicates the athlete cannot be deleted while
	// results still reference them.
	ErrAthleteHasResults = errors.New("cannot delete an athlete with existing results")

	// ErrWodHasResults indicates the workout cannot be deleted while results
	// still reference it.
	ErrWodHasResults = errors.New("cannot delete a wod with existing results")
)

var sentinels = []error{
	ErrAthleteNotFound,
	ErrWodNotFound,
	ErrResultNotFound,
	ErrEmailInUse,
	ErrWodNameTaken,
	ErrWodIDTaken,
	ErrAthleteHasResults,
	ErrWodHasResults,
}

// ServiceError wraps unexpected failures with the operation that produced them.
type ServiceError struct {
	// Operation is the use case that failed, e.g. "record_result".
	Operation string
	// Message is a human-readable description of the failure.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError classifies err for callers. Service sentinels and domain
// validation errors are returned unchanged, store conflicts are translated to
// their service equivalents, and anything else is wrapped in a ServiceError.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	switch {
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailInUse
	case errors.Is(err, store.ErrWodNameExists):
		return ErrWodNameTaken
	case errors.Is(err, store.ErrWodIDExists):
		return ErrWodIDTaken
	case errors.Is(err, store.ErrScoreKindMismatch):
		return scoreKindMismatch()
	case domain.IsValidationError(err):
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// scoreKindMismatch is the validation error for a result whose score kind
// differs from the athlete's earlier results on the same workout.
func scoreKindMismatch() error {
	return domain.NewValidationError("score",
		"type must match the athlete's earlier results for this workout", store.ErrScoreKindMismatch)
}
