package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/redact"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// PostgresAthleteStore implements the store.AthleteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAthleteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAthleteStore creates a new PostgreSQL implementation of the AthleteStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAthleteStore(db store.DBTX, logger *slog.Logger) *PostgresAthleteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAthleteStore{
		db:     db,
		logger: logger.With(slog.String("component", "athlete_store")),
	}
}

// Ensure PostgresAthleteStore implements store.AthleteStore interface
var _ store.AthleteStore = (*PostgresAthleteStore)(nil)

const athleteColumns = `id, name, email, created_at`

// Save implements store.AthleteStore.Save.
// Returns store.ErrEmailExists if another athlete already uses the email.
func (s *PostgresAthleteStore) Save(ctx context.Context, athlete *domain.Athlete) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO athletes (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		athlete.ID().String(),
		athlete.Name().String(),
		athlete.Email().String(),
		athlete.CreatedAt(),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrEmailExists) {
			log.Warn("athlete email already in use",
				slog.String("athlete_id", athlete.ID().String()),
				slog.String("email", redact.Email(athlete.Email().String())))
			return mapped
		}

		log.Error("failed to save athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", athlete.ID().String()))
		return store.NewStoreError("athlete", "save", "query failed", mapped)
	}

	log.Debug("athlete saved", slog.String("athlete_id", athlete.ID().String()))
	return nil
}

// FindByID implements store.AthleteStore.FindByID.
func (s *PostgresAthleteStore) FindByID(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE id = $1`
	return s.findOne(ctx, "find_by_id", query, id.String())
}

// FindByEmail implements store.AthleteStore.FindByEmail.
func (s *PostgresAthleteStore) FindByEmail(ctx context.Context, email domain.AthleteEmail) (*domain.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE email = $1`
	return s.findOne(ctx, "find_by_email", query, email.String())
}

// DeleteByID implements store.AthleteStore.DeleteByID.
// Returns store.ErrInvalidReference while results still reference the athlete.
func (s *PostgresAthleteStore) DeleteByID(ctx context.Context, id domain.AthleteID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `DELETE FROM athletes WHERE id = $1`, id.String())
	if err != nil {
		log.Error("failed to delete athlete",
			slog.String("error", redact.Error(err)),
			slog.String("athlete_id", id.String()))
		return store.NewStoreError("athlete", "delete", "query failed", MapError(err))
	}

	log.Debug("athlete deleted", slog.String("athlete_id", id.String()))
	return nil
}

func (s *PostgresAthleteStore) findOne(ctx context.Context, op, query string, arg string) (*domain.Athlete, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		rawID, rawName, rawEmail string
		createdAt                time.Time
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&rawID, &rawName, &rawEmail, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to query athlete",
			slog.String("error", redact.Error(err)),
			slog.String("operation", op))
		return nil, store.NewStoreError("athlete", op, "query failed", err)
	}

	athlete, err := scanAthlete(rawID, rawName, rawEmail, createdAt)
	if err != nil {
		log.Error("stored athlete failed validation",
			slog.String("error", err.Error()),
			slog.String("athlete_id", rawID))
		return nil, store.NewStoreError("athlete", op, "invalid stored row", errors.Join(store.ErrInvalidEntity, err))
	}
	return athlete, nil
}

func scanAthlete(rawID, rawName, rawEmail string, createdAt time.Time) (*domain.Athlete, error) {
	id, err := domain.NewAthleteID(rawID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewAthleteName(rawName)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewAthleteEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	return domain.ReconstituteAthlete(id, name, email, createdAt.UTC()), nil
}
