package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wodlog-api/internal/domain"
)

func newAthlete(t *testing.T, id, name, email string) *domain.Athlete {
	t.Helper()

	athleteID, err := domain.NewAthleteID(id)
	require.NoError(t, err)
	athleteName, err := domain.NewAthleteName(name)
	require.NoError(t, err)
	athleteEmail, err := domain.NewAthleteEmail(email)
	require.NoError(t, err)

	return domain.NewAthlete(athleteID, athleteName, athleteEmail)
}

func newWod(t *testing.T, id, name string) *domain.Wod {
	t.Helper()

	wodID, err := domain.NewWodID(id)
	require.NoError(t, err)
	wodName, err := domain.NewWodName(name)
	require.NoError(t, err)
	desc, err := domain.NewWodDescription("For time")
	require.NoError(t, err)

	wod, err := domain.NewWod(wodID, wodName, desc, domain.WodTypeForTime, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return wod
}

func newTimeResult(t *testing.T, id, athlete, wod string, seconds float64, completedAt time.Time) *domain.Result {
	t.Helper()

	resultID, err := domain.NewResultID(id)
	require.NoError(t, err)
	athleteID, err := domain.NewAthleteID(athlete)
	require.NoError(t, err)
	wodID, err := domain.NewWodID(wod)
	require.NoError(t, err)
	score, err := domain.NewTimeScore(seconds)
	require.NoError(t, err)

	return domain.ReconstituteResult(resultID, athleteID, wodID, score, true, "", completedAt)
}
