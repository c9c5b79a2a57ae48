package store

import (
	"context"

	"github.com/phrazzld/wodlog-api/internal/domain"
)

// ResultStore defines the interface for workout result persistence.
type ResultStore interface {
	// Save stores the result. Results are immutable, so saving an existing ID
	// replaces it wholesale. Returns ErrScoreKindMismatch when the athlete
	// already has results of another score kind for the WOD, and
	// ErrInvalidReference when the athlete or WOD is unknown to a store that
	// can check it.
	Save(ctx context.Context, result *domain.Result) error

	// FindByID returns the result, or nil if none has the ID.
	FindByID(ctx context.Context, id domain.ResultID) (*domain.Result, error)

	// FindByAthleteAndWod returns every result the athlete logged for the WOD,
	// oldest first. An empty slice means no results.
	FindByAthleteAndWod(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) ([]*domain.Result, error)

	// ExistsForAthlete reports whether the athlete has logged any result.
	ExistsForAthlete(ctx context.Context, athleteID domain.AthleteID) (bool, error)

	// ExistsForWod reports whether any result references the WOD.
	ExistsForWod(ctx context.Context, wodID domain.WodID) (bool, error)

	// Delete removes the result. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id domain.ResultID) error
}
