package store

import (
	"context"

	"github.com/phrazzld/wodlog-api/internal/domain"
)

// AthleteStore defines the interface for athlete persistence.
type AthleteStore interface {
	// Save inserts the athlete or replaces the stored copy with the same ID.
	// Returns ErrEmailExists if a different athlete already has the email.
	Save(ctx context.Context, athlete *domain.Athlete) error

	// FindByID returns the athlete, or nil if none has the ID.
	FindByID(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error)

	// FindByEmail returns the athlete registered with the email, or nil.
	FindByEmail(ctx context.Context, email domain.AthleteEmail) (*domain.Athlete, error)

	// DeleteByID removes the athlete. Deleting an unknown ID is a no-op.
	// Stores that track results return ErrInvalidReference while results
	// reference the athlete.
	DeleteByID(ctx context.Context, id domain.AthleteID) error
}
