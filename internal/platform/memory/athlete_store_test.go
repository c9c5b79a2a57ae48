package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/store"
)

func TestAthleteStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()
	athlete := newAthlete(t, "athlete-1", "Tia Toomey", "tia@example.com")

	require.NoError(t, s.Save(ctx, athlete))

	found, err := s.FindByID(ctx, athlete.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, athlete.Name(), found.Name())
	assert.Equal(t, athlete.CreatedAt(), found.CreatedAt())

	byEmail, err := s.FindByEmail(ctx, athlete.Email())
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.True(t, byEmail.ID().Equals(athlete.ID()))
}

func TestAthleteStore_MissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()

	id, _ := domain.NewAthleteID("ghost")
	found, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)

	email, _ := domain.NewAthleteEmail("ghost@example.com")
	byEmail, err := s.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, byEmail)
}

func TestAthleteStore_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()

	first := newAthlete(t, "athlete-1", "Tia Toomey", "tia@example.com")
	require.NoError(t, s.Save(ctx, first))

	clash := newAthlete(t, "athlete-2", "Someone Else", "TIA@example.com")
	err := s.Save(ctx, clash)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))

	// Re-saving the owner of the email is an update, not a clash.
	name, _ := domain.NewAthleteName("Tia-Clair Toomey")
	first.ChangeName(name)
	require.NoError(t, s.Save(ctx, first))

	found, err := s.FindByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, "Tia-Clair Toomey", found.Name().String())
}

func TestAthleteStore_StoresCopies(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()
	athlete := newAthlete(t, "athlete-1", "Tia Toomey", "tia@example.com")
	require.NoError(t, s.Save(ctx, athlete))

	renamed, _ := domain.NewAthleteName("Changed After Save")
	athlete.ChangeName(renamed)

	found, err := s.FindByID(ctx, athlete.ID())
	require.NoError(t, err)
	assert.Equal(t, "Tia Toomey", found.Name().String())

	found.ChangeName(renamed)
	again, err := s.FindByID(ctx, athlete.ID())
	require.NoError(t, err)
	assert.Equal(t, "Tia Toomey", again.Name().String())
}

func TestAthleteStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()
	athlete := newAthlete(t, "athlete-1", "Tia Toomey", "tia@example.com")
	require.NoError(t, s.Save(ctx, athlete))

	require.NoError(t, s.DeleteByID(ctx, athlete.ID()))
	found, err := s.FindByID(ctx, athlete.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	// Unknown IDs are a no-op.
	assert.NoError(t, s.DeleteByID(ctx, athlete.ID()))

	// The email is free again.
	require.NoError(t, s.Save(ctx, newAthlete(t, "athlete-2", "New Owner", "tia@example.com")))
}

func TestAthleteStore_ConcurrentSavesKeepEmailsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewAthleteStore()

	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	athletes := make([]*domain.Athlete, writers)
	for i := range athletes {
		athletes[i] = newAthlete(t, fmt.Sprintf("athlete-%d", i), "Racer", "shared@example.com")
	}

	for _, athlete := range athletes {
		wg.Add(1)
		go func(athlete *domain.Athlete) {
			defer wg.Done()
			if err := s.Save(ctx, athlete); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(athlete)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
