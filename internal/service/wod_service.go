package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// CreateWodParams describes a new workout. ID is optional; when blank a
// generated identifier is used. A zero Date means today (UTC).
type CreateWodParams struct {
	ID          string
	Name        string
	Description string
	Type        string
	Date        time.Time
}

// UpdateWodParams lists the workout fields to change. Nil fields are left
// untouched.
type UpdateWodParams struct {
	Name        *string
	Description *string
}

// WodService manages workout definitions.
type WodService interface {
	CreateWod(ctx context.Context, params CreateWodParams) (*domain.Wod, error)
	GetWod(ctx context.Context, id domain.WodID) (*domain.Wod, error)
	UpdateWod(ctx context.Context, id domain.WodID, params UpdateWodParams) (*domain.Wod, error)
	// DeleteWod removes a workout that has no recorded results.
	DeleteWod(ctx context.Context, id domain.WodID) error
}

type wodServiceImpl struct {
	wods    store.WodStore
	results store.ResultStore
	ids     IDGenerator
	logger  *slog.Logger
}

// NewWodService creates a WodService.
func NewWodService(
	wods store.WodStore,
	results store.ResultStore,
	ids IDGenerator,
	logger *slog.Logger,
) (WodService, error) {
	if wods == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wod store cannot be nil"}
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

	return &wodServiceImpl{
		wods:    wods,
		results: results,
		ids:     ids,
		logger:  logger.With(slog.String("component", "wod_service")),
	}, nil
}

func (s *wodServiceImpl) CreateWod(ctx context.Context, params CreateWodParams) (*domain.Wod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rawID := params.ID
	if strings.TrimSpace(rawID) == "" {
		rawID = s.ids.NewID()
	}
	id, err := domain.NewWodID(rawID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewWodName(params.Name)
	if err != nil {
		return nil, err
	}
	description, err := domain.NewWodDescription(params.Description)
	if err != nil {
		return nil, err
	}
	wodType, err := domain.ParseWodType(params.Type)
	if err != nil {
		return nil, err
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	existing, err := s.wods.FindByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("create_wod", "failed to check wod id", err)
	}
	if existing != nil {
		return nil, ErrWodIDTaken
	}

	taken, err := s.wods.ExistsByName(ctx, name)
	if err != nil {
		log.Error("failed to check wod name uniqueness",
			slog.String("error", redact.Error(err)),
			slog.String("name", name.String()))
		return nil, NewServiceError("create_wod", "failed to check wod name uniqueness", err)
	}
	if taken {
		return nil, ErrWodNameTaken
	}

	wod, err := domain.NewWod(id, name, description, wodType, date.UTC())
	if err != nil {
		return nil, err
	}
	// The checks above give clean errors in the common case; Create repeats
	// them atomically for concurrent requests.
	if err := s.wods.Create(ctx, wod); err != nil {
		if !store.IsDuplicateError(err) {
			log.Error("failed to save wod",
				slog.String("error", redact.Error(err)),
				slog.String("wod_id", id.String()))
		}
		return nil, NewServiceError("create_wod", "failed to save wod", err)
	}

	log.Info("wod created",
		slog.String("wod_id", id.String()),
		slog.String("wod_type", string(wodType)))
	return wod, nil
}

func (s *wodServiceImpl) GetWod(ctx context.Context, id domain.WodID) (*domain.Wod, error) {
	wod, err := s.wods.FindByID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", id.String()))
		return nil, NewServiceError("get_wod", "failed to retrieve wod", err)
	}
	if wod == nil {
		return nil, ErrWodNotFound
	}
	return wod, nil
}

func (s *wodServiceImpl) UpdateWod(ctx context.Context, id domain.WodID, params UpdateWodParams) (*domain.Wod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	wod, err := s.GetWod(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name, err := domain.NewWodName(*params.Name)
		if err != nil {
			return nil, err
		}
		// Names are unique ignoring case, so a pure case change cannot clash.
		if !strings.EqualFold(name.String(), wod.Name().String()) {
			taken, err := s.wods.ExistsByName(ctx, name)
			if err != nil {
				return nil, NewServiceError("update_wod", "failed to check wod name uniqueness", err)
			}
			if taken {
				return nil, ErrWodNameTaken
			}
		}
		wod.ChangeName(name)
	}

	if params.Description != nil {
		description, err := domain.NewWodDescription(*params.Description)
		if err != nil {
			return nil, err
		}
		wod.ChangeDescription(description)
	}

	if err := s.wods.Save(ctx, wod); err != nil {
		log.Error("failed to save wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", id.String()))
		return nil, NewServiceError("update_wod", "failed to save wod", err)
	}

	log.Info("wod updated", slog.String("wod_id", id.String()))
	return wod, nil
}

func (s *wodServiceImpl) DeleteWod(ctx context.Context, id domain.WodID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetWod(ctx, id); err != nil {
		return err
	}

	hasResults, err := s.results.ExistsForWod(ctx, id)
	if err != nil {
		return NewServiceError("delete_wod", "failed to check wod results", err)
	}
	if hasResults {
		return ErrWodHasResults
	}

	if err := s.wods.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", id.String()))
		if errors.Is(err, store.ErrInvalidReference) {
			return ErrWodHasResults
		}
		return NewServiceError("delete_wod", "failed to delete wod", err)
	}

	log.Info("wod deleted", slog.String("wod_id", id.String()))
	return nil
}
