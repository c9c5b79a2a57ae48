package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/platform/metrics"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// PRCache remembers which result is an athlete's best on a workout. Each
// athlete and workout pair carries a generation that Invalidate advances;
// Set only writes while the generation still matches the one Get returned.
type PRCache interface {
	Get(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) (domain.ResultID, int64, bool, error)
	Set(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID, gen int64, resultID domain.ResultID) (bool, error)
	Invalidate(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) error
}

// PRService resolves personal records.
type PRService struct {
	results store.ResultStore
	cache   PRCache
	logger  *slog.Logger
}

// NewPRService creates a PRService. cache may be nil, in which case every
// lookup reads the athlete's full history.
func NewPRService(results store.ResultStore, cache PRCache, logger *slog.Logger) (*PRService, error) {
	if results == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "result store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PRService{
		results: results,
		cache:   cache,
		logger:  logger.With(slog.String("component", "pr_service")),
	}, nil
}

// GetPR returns the athlete's best result for the workout, or (nil, nil) when
// nothing has been recorded. Ties go to the earliest result.
//
// Cache failures never fail the lookup; they are logged and the PR is
// recomputed from the store.
func (s *PRService) GetPR(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) (*domain.Result, error) {
	cached, gen, cacheable := s.cachedPR(ctx, athleteID, wodID)
	if cached != nil {
		metrics.ObservePRLookup(metrics.PRCacheHit)
		return cached, nil
	}

	results, err := s.results.FindByAthleteAndWod(ctx, athleteID, wodID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load results for pr",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", athleteID.String()),
			slog.String("wod_id", wodID.String()))
		return nil, NewServiceError("get_pr", "failed to load results", err)
	}

	best := domain.BestResult(results)
	if best == nil {
		metrics.ObservePRLookup(metrics.PRNoResults)
		return nil, nil
	}
	metrics.ObservePRLookup(metrics.PRComputed)

	if cacheable {
		s.storePR(ctx, athleteID, wodID, gen, best.ID())
	}
	return best, nil
}

// cachedPR returns the cached PR if the cache holds one that still exists
// and still belongs to the athlete and workout. Stale entries are evicted.
// On a miss it also returns the generation a later write must match, and
// whether such a write may be attempted at all.
func (s *PRService) cachedPR(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) (result *domain.Result, gen int64, cacheable bool) {
	if s.cache == nil {
		return nil, 0, false
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	resultID, gen, ok, err := s.cache.Get(ctx, athleteID, wodID)
	if err != nil {
		log.Warn("pr cache lookup failed", slog.String("error", redact.Error(err)))
		return nil, 0, false
	}
	if !ok {
		return nil, gen, true
	}

	result, err = s.results.FindByID(ctx, resultID)
	if err != nil {
		log.Warn("failed to load cached pr", slog.String("error", redact.Error(err)))
		return nil, gen, true
	}
	if result == nil || !result.AthleteID().Equals(athleteID) || !result.WodID().Equals(wodID) {
		log.Debug("evicting stale pr cache entry", slog.String("result_id", resultID.String()))
		if err := s.cache.Invalidate(ctx, athleteID, wodID); err != nil {
			log.Warn("failed to evict stale pr", slog.String("error", redact.Error(err)))
		}
		return nil, 0, false
	}
	return result, gen, true
}

// storePR caches resultID unless the pair was invalidated after gen was read.
func (s *PRService) storePR(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID, gen int64, resultID domain.ResultID) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stored, err := s.cache.Set(ctx, athleteID, wodID, gen, resultID)
	if err != nil {
		log.Warn("failed to cache pr",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", athleteID.String()),
			slog.String("wod_id", wodID.String()))
		return
	}
	if !stored {
		log.Debug("results changed during pr lookup, not caching",
			slog.String("athlete_id", athleteID.String()),
			slog.String("wod_id", wodID.String()))
	}
}
