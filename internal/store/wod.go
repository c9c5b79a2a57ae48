package store

import (
	"context"

	"github.com/phrazzld/wodlog-api/internal/domain"
)

// WodStore defines the interface for workout persistence.
type WodStore interface {
	// Create inserts a new WOD. Returns ErrWodIDExists if the ID is taken and
	// ErrWodNameExists if another WOD has the name. Never overwrites.
	Create(ctx context.Context, wod *domain.Wod) error

	// Save inserts the WOD or replaces the stored copy with the same ID.
	// Returns ErrWodNameExists if a different WOD already has the name.
	Save(ctx context.Context, wod *domain.Wod) error

	// FindByID returns the WOD, or nil if none has the ID.
	FindByID(ctx context.Context, id domain.WodID) (*domain.Wod, error)

	// ExistsByName reports whether any WOD uses the name.
	ExistsByName(ctx context.Context, name domain.WodName) (bool, error)

	// DeleteByID removes the WOD. Deleting an unknown ID is a no-op. Stores
	// that track results return ErrInvalidReference while results reference it.
	DeleteByID(ctx context.Context, id domain.WodID) error
}
