package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/events"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/platform/metrics"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// RecordResultParams carries a performance as submitted by a client.
// SecondaryValue is required for ROUNDS_REPS scores and rejected otherwise.
type RecordResultParams struct {
	AthleteID      string
	WodID          string
	ScoreType      string
	PrimaryValue   float64
	SecondaryValue *float64
	IsRx           bool
	Notes          string
}

// ResultService records and retrieves workout results.
type ResultService interface {
	// RecordResult validates the score, checks that the athlete and workout
	// exist, stores the result and emits a result.recorded event.
	RecordResult(ctx context.Context, params RecordResultParams) (*domain.Result, error)

	// GetResult returns the result or ErrResultNotFound.
	GetResult(ctx context.Context, id domain.ResultID) (*domain.Result, error)

	// ListResults returns an athlete's results for a workout, oldest first.
	ListResults(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) ([]*domain.Result, error)

	// DeleteResult removes a result and emits a result.deleted event.
	DeleteResult(ctx context.Context, id domain.ResultID) error
}

type resultServiceImpl struct {
	results  store.ResultStore
	athletes store.AthleteStore
	wods     store.WodStore
	emitter  events.EventEmitter
	ids      IDGenerator
	logger   *slog.Logger
}

// ResultServiceDeps groups the collaborators of the result service.
type ResultServiceDeps struct {
	Results  store.ResultStore
	Athletes store.AthleteStore
	Wods     store.WodStore
	// Emitter is optional.
	Emitter events.EventEmitter
	IDs     IDGenerator
	Logger  *slog.Logger
}

// NewResultService creates a ResultService.
func NewResultService(deps ResultServiceDeps) (ResultService, error) {
	if deps.Results == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "result store cannot be nil"}
	}
	if deps.Athletes == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "athlete store cannot be nil"}
	}
	if deps.Wods == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wod store cannot be nil"}
	}
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &resultServiceImpl{
		results:  deps.Results,
		athletes: deps.Athletes,
		wods:     deps.Wods,
		emitter:  deps.Emitter,
		ids:      deps.IDs,
		logger:   deps.Logger.With(slog.String("component", "result_service")),
	}, nil
}

func (s *resultServiceImpl) RecordResult(ctx context.Context, params RecordResultParams) (*domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	athleteID, err := domain.NewAthleteID(params.AthleteID)
	if err != nil {
		return nil, err
	}
	wodID, err := domain.NewWodID(params.WodID)
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseScoreKind(params.ScoreType)
	if err != nil {
		return nil, err
	}
	score, err := domain.NewScore(kind, params.PrimaryValue, params.SecondaryValue)
	if err != nil {
		return nil, err
	}

	athlete, err := s.athletes.FindByID(ctx, athleteID)
	if err != nil {
		return nil, NewServiceError("record_result", "failed to retrieve athlete", err)
	}
	if athlete == nil {
		return nil, ErrAthleteNotFound
	}
	wod, err := s.wods.FindByID(ctx, wodID)
	if err != nil {
		return nil, NewServiceError("record_result", "failed to retrieve wod", err)
	}
	if wod == nil {
		return nil, ErrWodNotFound
	}

	// An athlete's results for one workout share a score kind; without that
	// there is no best result to compare against.
	earlier, err := s.results.FindByAthleteAndWod(ctx, athleteID, wodID)
	if err != nil {
		return nil, NewServiceError("record_result", "failed to retrieve earlier results", err)
	}
	for _, r := range earlier {
		if r.Score().Kind() != kind {
			return nil, scoreKindMismatch()
		}
	}

	resultID, err := domain.NewResultID(s.ids.NewID())
	if err != nil {
		return nil, NewServiceError("record_result", "failed to generate result id", err)
	}

	result := domain.NewResult(resultID, athleteID, wodID, score, params.IsRx, params.Notes)
	if err := s.results.Save(ctx, result); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidReference):
			// The athlete or workout was deleted after the checks above.
			return nil, s.missingReference(ctx, athleteID, err)
		case errors.Is(err, store.ErrScoreKindMismatch):
			return nil, scoreKindMismatch()
		}
		log.Error("failed to save result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", resultID.String()))
		return nil, NewServiceError("record_result", "failed to save result", err)
	}

	metrics.ObserveResultRecorded(string(kind))
	log.Info("result recorded",
		slog.String("result_id", resultID.String()),
		slog.String("athlete_id", athleteID.String()),
		slog.String("wod_id", wodID.String()),
		slog.String("score", score.String()))

	s.emit(ctx, events.TypeResultRecorded, result)
	return result, nil
}

// missingReference reports which side of a rejected result went away.
func (s *resultServiceImpl) missingReference(ctx context.Context, athleteID domain.AthleteID, saveErr error) error {
	athlete, err := s.athletes.FindByID(ctx, athleteID)
	if err != nil {
		return NewServiceError("record_result", "failed to save result", saveErr)
	}
	if athlete == nil {
		return ErrAthleteNotFound
	}
	return ErrWodNotFound
}

func (s *resultServiceImpl) GetResult(ctx context.Context, id domain.ResultID) (*domain.Result, error) {
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", id.String()))
		return nil, NewServiceError("get_result", "failed to retrieve result", err)
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

func (s *resultServiceImpl) ListResults(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	results, err := s.results.FindByAthleteAndWod(ctx, athleteID, wodID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list results",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", athleteID.String()),
			slog.String("wod_id", wodID.String()))
		return nil, NewServiceError("list_results", "failed to list results", err)
	}
	return results, nil
}

func (s *resultServiceImpl) DeleteResult(ctx context.Context, id domain.ResultID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.GetResult(ctx, id)
	if err != nil {
		return err
	}

	if err := s.results.Delete(ctx, id); err != nil {
		log.Error("failed to delete result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", id.String()))
		return NewServiceError("delete_result", "failed to delete result", err)
	}

	metrics.ObserveResultDeleted()
	log.Info("result deleted", slog.String("result_id", id.String()))

	s.emit(ctx, events.TypeResultDeleted, result)
	return nil
}

// emit publishes a result event. The result is already stored, so failures
// are logged rather than returned.
func (s *resultServiceImpl) emit(ctx context.Context, eventType string, result *domain.Result) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, events.ResultPayload{
		ResultID:  result.ID().String(),
		AthleteID: result.AthleteID().String(),
		WodID:     result.WodID().String(),
	})
	if err != nil {
		log.Error("failed to build event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handlers failed",
			slog.String("error", redact.Error(err)),
			slog.String("event_type", eventType),
			slog.String("result_id", result.ID().String()))
	}
}
