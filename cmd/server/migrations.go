package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wodlog-api/internal/config"
	"github.com/phrazzld/wodlog-api/internal/platform/postgres"
	"github.com/phrazzld/wodlog-api/internal/redact"
)

var errNoDatabaseURL = errors.New("database.url is required to run migrations")

// runMigrations opens the configured database, applies command and closes
// the connection again.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.URL == "" {
		return errNoDatabaseURL
	}

	db, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", slog.String("error", redact.Error(closeErr)))
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
