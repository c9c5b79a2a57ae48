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

// PostgresWodStore implements the store.WodStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWodStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWodStore creates a new PostgreSQL implementation of the WodStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWodStore(db store.DBTX, logger *slog.Logger) *PostgresWodStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWodStore{
		db:     db,
		logger: logger.With(slog.String("component", "wod_store")),
	}
}

// Ensure PostgresWodStore implements store.WodStore interface
var _ store.WodStore = (*PostgresWodStore)(nil)

// Create implements store.WodStore.Create. The insert skips an existing ID
// instead of updating it, and a skipped insert is reported as
// store.ErrWodIDExists.
func (s *PostgresWodStore) Create(ctx context.Context, wod *domain.Wod) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO wods (id, name, description, type, wod_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.db.ExecContext(
		ctx,
		query,
		wod.ID().String(),
		wod.Name().String(),
		wod.Description().String(),
		string(wod.Type()),
		wod.Date(),
		wod.CreatedAt(),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrWodNameExists) {
			log.Warn("wod name already in use",
				slog.String("wod_id", wod.ID().String()),
				slog.String("name", wod.Name().String()))
			return mapped
		}

		log.Error("failed to create wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", wod.ID().String()))
		return store.NewStoreError("wod", "create", "query failed", mapped)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("wod", "create", "rows affected unavailable", err)
	}
	if inserted == 0 {
		log.Warn("wod id already in use", slog.String("wod_id", wod.ID().String()))
		return store.ErrWodIDExists
	}

	log.Debug("wod created", slog.String("wod_id", wod.ID().String()))
	return nil
}

// Save implements store.WodStore.Save.
// Returns store.ErrWodNameExists if another WOD already uses the name.
func (s *PostgresWodStore) Save(ctx context.Context, wod *domain.Wod) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO wods (id, name, description, type, wod_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		wod.ID().String(),
		wod.Name().String(),
		wod.Description().String(),
		string(wod.Type()),
		wod.Date(),
		wod.CreatedAt(),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrWodNameExists) {
			log.Warn("wod name already in use",
				slog.String("wod_id", wod.ID().String()),
				slog.String("name", wod.Name().String()))
			return mapped
		}

		log.Error("failed to save wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", wod.ID().String()))
		return store.NewStoreError("wod", "save", "query failed", mapped)
	}

	log.Debug("wod saved", slog.String("wod_id", wod.ID().String()))
	return nil
}

// FindByID implements store.WodStore.FindByID.
func (s *PostgresWodStore) FindByID(ctx context.Context, id domain.WodID) (*domain.Wod, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, type, wod_date, created_at
		FROM wods
		WHERE id = $1
	`

	var (
		rawID, rawName, rawDesc, rawType string
		date, createdAt                  time.Time
	)
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &rawName, &rawDesc, &rawType, &date, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to get wod by ID",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", id.String()))
		return nil, store.NewStoreError("wod", "find_by_id", "query failed", err)
	}

	wod, err := scanWod(rawID, rawName, rawDesc, rawType, date, createdAt)
	if err != nil {
		log.Error("stored wod failed validation",
			slog.String("error", err.Error()),
			slog.String("wod_id", rawID))
		return nil, store.NewStoreError("wod", "find_by_id", "invalid stored row", errors.Join(store.ErrInvalidEntity, err))
	}
	return wod, nil
}

// ExistsByName implements store.WodStore.ExistsByName. Matching is
// case-insensitive, like the wods_name_key index.
func (s *PostgresWodStore) ExistsByName(ctx context.Context, name domain.WodName) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wods WHERE lower(name) = lower($1))`,
		name.String(),
	).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check wod name",
			slog.String("error", redact.Error(err)))
		return false, store.NewStoreError("wod", "exists_by_name", "query failed", err)
	}
	return exists, nil
}

// DeleteByID implements store.WodStore.DeleteByID.
// Returns store.ErrInvalidReference while results still reference the WOD.
func (s *PostgresWodStore) DeleteByID(ctx context.Context, id domain.WodID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM wods WHERE id = $1`, id.String()); err != nil {
		log.Error("failed to delete wod",
			slog.String("error", redact.Error(err)),
			slog.String("wod_id", id.String()))
		return store.NewStoreError("wod", "delete", "query failed", MapError(err))
	}

	log.Debug("wod deleted", slog.String("wod_id", id.String()))
	return nil
}

func scanWod(rawID, rawName, rawDesc, rawType string, date, createdAt time.Time) (*domain.Wod, error) {
	id, err := domain.NewWodID(rawID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewWodName(rawName)
	if err != nil {
		return nil, err
	}
	desc, err := domain.NewWodDescription(rawDesc)
	if err != nil {
		return nil, err
	}
	wodType, err := domain.ParseWodType(rawType)
	if err != nil {
		return nil, err
	}
	return domain.ReconstituteWod(id, name, desc, wodType, date.UTC(), createdAt.UTC())
}
