package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// PostgresResultStore implements the store.ResultStore interface
// using a PostgreSQL database as the storage backend.
type PostgresResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResultStore creates a new PostgreSQL implementation of the ResultStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresResultStore(db store.DBTX, logger *slog.Logger) *PostgresResultStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

// Ensure PostgresResultStore implements store.ResultStore interface
var _ store.ResultStore = (*PostgresResultStore)(nil)

const resultColumns = `id, athlete_id, wod_id, score_type, primary_value, secondary_value, is_rx, notes, completed_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Save implements store.ResultStore.Save.
// Returns store.ErrInvalidReference if the athlete or WOD does not exist.
func (s *PostgresResultStore) Save(ctx context.Context, result *domain.Result) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var secondary sql.NullFloat64
	if reps, ok := result.Score().Secondary(); ok {
		secondary = sql.NullFloat64{Float64: reps, Valid: true}
	}
	var notes sql.NullString
	if text, ok := result.Notes(); ok {
		notes = sql.NullString{String: text, Valid: true}
	}

	query := `
		INSERT INTO results (` + resultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET athlete_id = EXCLUDED.athlete_id,
			wod_id = EXCLUDED.wod_id,
			score_type = EXCLUDED.score_type,
			primary_value = EXCLUDED.primary_value,
			secondary_value = EXCLUDED.secondary_value,
			is_rx = EXCLUDED.is_rx,
			notes = EXCLUDED.notes,
			completed_at = EXCLUDED.completed_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		result.ID().String(),
		result.AthleteID().String(),
		result.WodID().String(),
		string(result.Score().Kind()),
		result.Score().Primary(),
		secondary,
		result.IsRx(),
		notes,
		result.CompletedAt(),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidReference) {
			log.Warn("result references a missing athlete or wod",
				slog.String("result_id", result.ID().String()),
				slog.String("athlete_id", result.AthleteID().String()),
				slog.String("wod_id", result.WodID().String()))
			return mapped
		}
		if errors.Is(mapped, store.ErrScoreKindMismatch) {
			log.Warn("result score kind differs from earlier results",
				slog.String("result_id", result.ID().String()),
				slog.String("score_type", string(result.Score().Kind())))
			return mapped
		}

		log.Error("failed to save result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", result.ID().String()))
		return store.NewStoreError("result", "save", "query failed", mapped)
	}

	log.Debug("result saved",
		slog.String("result_id", result.ID().String()),
		slog.String("score_type", string(result.Score().Kind())))
	return nil
}

// FindByID implements store.ResultStore.FindByID.
func (s *PostgresResultStore) FindByID(ctx context.Context, id domain.ResultID) (*domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`
	result, err := scanResult(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to get result by ID",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", id.String()))
		return nil, store.NewStoreError("result", "find_by_id", "query failed", err)
	}
	return result, nil
}

// FindByAthleteAndWod implements store.ResultStore.FindByAthleteAndWod.
func (s *PostgresResultStore) FindByAthleteAndWod(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) ([]*domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE athlete_id = $1 AND wod_id = $2
		ORDER BY completed_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, athleteID.String(), wodID.String())
	if err != nil {
		log.Error("failed to list results",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", athleteID.String()),
			slog.String("wod_id", wodID.String()))
		return nil, store.NewStoreError("result", "find_by_athlete_and_wod", "query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close result rows", slog.String("error", closeErr.Error()))
		}
	}()

	results := make([]*domain.Result, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, store.NewStoreError("result", "find_by_athlete_and_wod", "scan failed", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("result", "find_by_athlete_and_wod", "iteration failed", err)
	}

	log.Debug("results listed",
		slog.String("athlete_id", athleteID.String()),
		slog.String("wod_id", wodID.String()),
		slog.Int("count", len(results)))
	return results, nil
}

// ExistsForAthlete implements store.ResultStore.ExistsForAthlete.
func (s *PostgresResultStore) ExistsForAthlete(ctx context.Context, athleteID domain.AthleteID) (bool, error) {
	return s.exists(ctx, "exists_for_athlete",
		`SELECT EXISTS (SELECT 1 FROM results WHERE athlete_id = $1)`, athleteID.String())
}

// ExistsForWod implements store.ResultStore.ExistsForWod.
func (s *PostgresResultStore) ExistsForWod(ctx context.Context, wodID domain.WodID) (bool, error) {
	return s.exists(ctx, "exists_for_wod",
		`SELECT EXISTS (SELECT 1 FROM results WHERE wod_id = $1)`, wodID.String())
}

// Delete implements store.ResultStore.Delete.
func (s *PostgresResultStore) Delete(ctx context.Context, id domain.ResultID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE id = $1`, id.String()); err != nil {
		log.Error("failed to delete result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", id.String()))
		return store.NewStoreError("result", "delete", "query failed", MapError(err))
	}

	log.Debug("result deleted", slog.String("result_id", id.String()))
	return nil
}

func (s *PostgresResultStore) exists(ctx context.Context, op, query, arg string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check results",
			slog.String("error", redact.Error(err)),
			slog.String("operation", op))
		return false, store.NewStoreError("result", op, "query failed", err)
	}
	return exists, nil
}

// scanResult reads one row in resultColumns order and rebuilds the domain
// value, re-validating every field.
func scanResult(row rowScanner) (*domain.Result, error) {
	var (
		rawID, rawAthlete, rawWod, rawKind string
		primary                            float64
		secondary                          sql.NullFloat64
		isRx                               bool
		notes                              sql.NullString
		completedAt                        time.Time
	)
	if err := row.Scan(
		&rawID, &rawAthlete, &rawWod, &rawKind, &primary, &secondary, &isRx, &notes, &completedAt,
	); err != nil {
		return nil, err
	}

	id, err := domain.NewResultID(rawID)
	if err != nil {
		return nil, invalidRow(rawID, err)
	}
	athleteID, err := domain.NewAthleteID(rawAthlete)
	if err != nil {
		return nil, invalidRow(rawID, err)
	}
	wodID, err := domain.NewWodID(rawWod)
	if err != nil {
		return nil, invalidRow(rawID, err)
	}

	var secondaryPtr *float64
	if secondary.Valid {
		secondaryPtr = &secondary.Float64
	}
	score, err := domain.NewScore(domain.ScoreKind(rawKind), primary, secondaryPtr)
	if err != nil {
		return nil, invalidRow(rawID, err)
	}

	return domain.ReconstituteResult(id, athleteID, wodID, score, isRx, notes.String, completedAt.UTC()), nil
}

func invalidRow(id string, err error) error {
	return fmt.Errorf("%w: result %s: %w", store.ErrInvalidEntity, id, err)
}
