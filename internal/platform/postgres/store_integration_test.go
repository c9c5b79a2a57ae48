//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/phrazzld/wodlog-api/internal/config"
	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/postgres"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// setupDB starts a throwaway Postgres, applies the embedded migrations and
// returns an open pool.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("wodlog"),
		postgrescontainer.WithUsername("wodlog"),
		postgrescontainer.WithPassword("wodlog"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: connStr, MaxOpenConns: 5, MaxIdleConns: 2}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, nil))
	return db
}

func mustAthlete(t *testing.T, id, name, email string) *domain.Athlete {
	t.Helper()
	athleteID, err := domain.NewAthleteID(id)
	require.NoError(t, err)
	athleteName, err := domain.NewAthleteName(name)
	require.NoError(t, err)
	athleteEmail, err := domain.NewAthleteEmail(email)
	require.NoError(t, err)
	return domain.NewAthlete(athleteID, athleteName, athleteEmail)
}

func mustWod(t *testing.T, id, name string) *domain.Wod {
	t.Helper()
	wodID, err := domain.NewWodID(id)
	require.NoError(t, err)
	wodName, err := domain.NewWodName(name)
	require.NoError(t, err)
	desc, err := domain.NewWodDescription("21-15-9 thrusters and pull-ups")
	require.NoError(t, err)
	wod, err := domain.NewWod(wodID, wodName, desc, domain.WodTypeForTime, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return wod
}

func TestPostgresStores(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	athletes := postgres.NewPostgresAthleteStore(db, nil)
	wods := postgres.NewPostgresWodStore(db, nil)
	results := postgres.NewPostgresResultStore(db, nil)

	athlete := mustAthlete(t, "athlete-1", "Annie Thorisdottir", "annie@example.com")
	wod := mustWod(t, "fran", "Fran")

	t.Run("athletes", func(t *testing.T) {
		require.NoError(t, athletes.Save(ctx, athlete))

		found, err := athletes.FindByID(ctx, athlete.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, athlete.Email(), found.Email())
		assert.True(t, athlete.CreatedAt().Truncate(time.Microsecond).Equal(found.CreatedAt()))

		byEmail, err := athletes.FindByEmail(ctx, athlete.Email())
		require.NoError(t, err)
		require.NotNil(t, byEmail)

		clash := mustAthlete(t, "athlete-2", "Someone Else", "annie@example.com")
		assert.ErrorIs(t, athletes.Save(ctx, clash), store.ErrEmailExists)

		missing, err := athletes.FindByID(ctx, clash.ID())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("wods", func(t *testing.T) {
		require.NoError(t, wods.Save(ctx, wod))

		found, err := wods.FindByID(ctx, wod.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.WodTypeForTime, found.Type())

		upper, _ := domain.NewWodName("FRAN")
		exists, err := wods.ExistsByName(ctx, upper)
		require.NoError(t, err)
		assert.True(t, exists)

		assert.ErrorIs(t, wods.Save(ctx, mustWod(t, "fran-copy", "fran")), store.ErrWodNameExists)
		assert.ErrorIs(t, wods.Create(ctx, mustWod(t, "fran", "Fran Again")), store.ErrWodIDExists)
		assert.ErrorIs(t, wods.Create(ctx, mustWod(t, "fran-copy", "FRAN")), store.ErrWodNameExists)
	})

	t.Run("results", func(t *testing.T) {
		var ids []domain.ResultID
		for _, seconds := range []float64{930, 845, 901} {
			id, err := domain.NewResultID(uuid.NewString())
			require.NoError(t, err)
			score, err := domain.NewTimeScore(seconds)
			require.NoError(t, err)
			require.NoError(t, results.Save(ctx, domain.NewResult(id, athlete.ID(), wod.ID(), score, true, "")))
			ids = append(ids, id)
		}

		listed, err := results.FindByAthleteAndWod(ctx, athlete.ID(), wod.ID())
		require.NoError(t, err)
		require.Len(t, listed, 3)

		best := domain.BestResult(listed)
		require.NotNil(t, best)
		assert.Equal(t, 845.0, best.Score().Primary())

		has, err := results.ExistsForAthlete(ctx, athlete.ID())
		require.NoError(t, err)
		assert.True(t, has)

		// Foreign keys block deleting a referenced athlete.
		assert.ErrorIs(t, athletes.DeleteByID(ctx, athlete.ID()), store.ErrInvalidReference)

		rrID, _ := domain.NewResultID(uuid.NewString())
		rr, _ := domain.NewRoundsRepsScore(5, 12)
		mixed := domain.NewResult(rrID, athlete.ID(), wod.ID(), rr, false, "scaled")
		assert.ErrorIs(t, results.Save(ctx, mixed), store.ErrScoreKindMismatch)

		cindy := mustWod(t, "cindy", "Cindy")
		require.NoError(t, wods.Save(ctx, cindy))
		require.NoError(t, results.Save(ctx, domain.NewResult(rrID, athlete.ID(), cindy.ID(), rr, false, "scaled")))
		stored, err := results.FindByID(ctx, rrID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.Score().Equals(rr))
		notes, ok := stored.Notes()
		assert.True(t, ok)
		assert.Equal(t, "scaled", notes)

		for _, id := range append(ids, rrID) {
			require.NoError(t, results.Delete(ctx, id))
		}
		require.NoError(t, athletes.DeleteByID(ctx, athlete.ID()))
	})

	t.Run("orphan result", func(t *testing.T) {
		id, _ := domain.NewResultID(uuid.NewString())
		ghost, _ := domain.NewAthleteID("ghost")
		score, _ := domain.NewRepsScore(100)
		err := results.Save(ctx, domain.NewResult(id, ghost, wod.ID(), score, true, ""))
		assert.ErrorIs(t, err, store.ErrInvalidReference)
	})
}

func TestMigrateDownAndStatus(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateStatus, nil))
	// One down per migration.
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateDown, nil))
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateDown, nil))

	var exists bool
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'athletes')`,
	).Scan(&exists))
	assert.False(t, exists)

	assert.Error(t, postgres.Migrate(ctx, db, "sideways", nil))
}
