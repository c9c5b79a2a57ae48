package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// UpdateAthleteParams lists the athlete fields to change. Nil fields are left
// untouched.
type UpdateAthleteParams struct {
	Name  *string
	Email *string
}

// AthleteService manages athlete registration and profile changes.
type AthleteService interface {
	// CreateAthlete registers a new athlete. The email must not belong to
	// another athlete.
	CreateAthlete(ctx context.Context, name, email string) (*domain.Athlete, error)

	// GetAthlete returns the athlete or ErrAthleteNotFound.
	GetAthlete(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error)

	// UpdateAthlete applies params to an existing athlete.
	UpdateAthlete(ctx context.Context, id domain.AthleteID, params UpdateAthleteParams) (*domain.Athlete, error)

	// DeleteAthlete removes an athlete that has no recorded results.
	DeleteAthlete(ctx context.Context, id domain.AthleteID) error
}

type athleteServiceImpl struct {
	athletes store.AthleteStore
	results  store.ResultStore
	ids      IDGenerator
	logger   *slog.Logger
}

// NewAthleteService creates an AthleteService. A nil ids falls back to
// UUIDGenerator and a nil logger to slog.Default.
func NewAthleteService(
	athletes store.AthleteStore,
	results store.ResultStore,
	ids IDGenerator,
	logger *slog.Logger,
) (AthleteService, error) {
	if athletes == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "athlete store cannot be nil"}
	}
	if results == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "result store cannot be nil"}
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &athleteServiceImpl{
		athletes: athletes,
		results:  results,
		ids:      ids,
		logger:   logger.With(slog.String("component", "athlete_service")),
	}, nil
}

func (s *athleteServiceImpl) CreateAthlete(ctx context.Context, name, email string) (*domain.Athlete, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	athleteName, err := domain.NewAthleteName(name)
	if err != nil {
		return nil, err
	}
	athleteEmail, err := domain.NewAthleteEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.athletes.FindByEmail(ctx, athleteEmail)
	if err != nil {
		log.Error("failed to check email uniqueness",
			slog.String("error", redact.Error(err)),
			slog.String("email", redact.Email(athleteEmail.String())))
		return nil, NewServiceError("create_athlete", "failed to check email uniqueness", err)
	}
	if existing != nil {
		log.Debug("email already registered", slog.String("email", redact.Email(athleteEmail.String())))
		return nil, ErrEmailInUse
	}

	id, err := domain.NewAthleteID(s.ids.NewID())
	if err != nil {
		return nil, NewServiceError("create_athlete", "failed to generate athlete id", err)
	}

	athlete := domain.NewAthlete(id, athleteName, athleteEmail)
	if err := s.athletes.Save(ctx, athlete); err != nil {
		log.Error("failed to save athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", id.String()))
		return nil, NewServiceError("create_athlete", "failed to save athlete", err)
	}

	log.Info("athlete created", slog.String("athlete_id", id.String()))
	return athlete, nil
}

func (s *athleteServiceImpl) GetAthlete(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error) {
	athlete, err := s.athletes.FindByID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", id.String()))
		return nil, NewServiceError("get_athlete", "failed to retrieve athlete", err)
	}
	if athlete == nil {
		return nil, ErrAthleteNotFound
	}
	return athlete, nil
}

func (s *athleteServiceImpl) UpdateAthlete(
	ctx context.Context,
	id domain.AthleteID,
	params UpdateAthleteParams,
) (*domain.Athlete, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	athlete, err := s.GetAthlete(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name, err := domain.NewAthleteName(*params.Name)
		if err != nil {
			return nil, err
		}
		athlete.ChangeName(name)
	}

	if params.Email != nil {
		email, err := domain.NewAthleteEmail(*params.Email)
		if err != nil {
			return nil, err
		}
		if !email.Equals(athlete.Email()) {
			owner, err := s.athletes.FindByEmail(ctx, email)
			if err != nil {
				return nil, NewServiceError("update_athlete", "failed to check email uniqueness", err)
			}
			if owner != nil && !owner.ID().Equals(id) {
				return nil, ErrEmailInUse
			}
			athlete.ChangeEmail(email)
		}
	}

	if err := s.athletes.Save(ctx, athlete); err != nil {
		log.Error("failed to save athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", id.String()))
		return nil, NewServiceError("update_athlete", "failed to save athlete", err)
	}

	log.Info("athlete updated", slog.String("athlete_id", id.String()))
	return athlete, nil
}

func (s *athleteServiceImpl) DeleteAthlete(ctx context.Context, id domain.AthleteID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetAthlete(ctx, id); err != nil {
		return err
	}

	hasResults, err := s.results.ExistsForAthlete(ctx, id)
	if err != nil {
		return NewServiceError("delete_athlete", "failed to check athlete results", err)
	}
	if hasResults {
		log.Debug("refusing to delete athlete with results", slog.String("athlete_id", id.String()))
		return ErrAthleteHasResults
	}

	if err := s.athletes.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", id.String()))
		if errors.Is(err, store.ErrInvalidReference) {
			return ErrAthleteHasResults
		}
		return NewServiceError("delete_athlete", "failed to delete athlete", err)
	}

	log.Info("athlete deleted", slog.String("athlete_id", id.String()))
	return nil
}
