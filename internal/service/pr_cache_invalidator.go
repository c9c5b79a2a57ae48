package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/events"
)

// PRCacheInvalidator evicts cached PRs whenever a result is recorded or
// deleted. Register it with the event emitter used by the ResultService.
type PRCacheInvalidator struct {
	cache PRCache
}

// NewPRCacheInvalidator creates an invalidator for cache.
func NewPRCacheInvalidator(cache PRCache) *PRCacheInvalidator {
	return &PRCacheInvalidator{cache: cache}
}

// HandleEvent implements events.EventHandler.
func (h *PRCacheInvalidator) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeResultRecorded && event.Type != events.TypeResultDeleted {
		return nil
	}

	var payload events.ResultPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	athleteID, err := domain.NewAthleteID(payload.AthleteID)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	wodID, err := domain.NewWodID(payload.WodID)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}

	return h.cache.Invalidate(ctx, athleteID, wodID)
}
