package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWodName(t *testing.T) {
	t.Parallel()

	name, err := NewWodName("  Fran ")
	require.NoError(t, err)
	assert.Equal(t, "Fran", name.String())

	_, err = NewWodName("F")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewWodName(strings.Repeat("m", 101))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewWodName("")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestNewWodDescription(t *testing.T) {
	t.Parallel()

	desc, err := NewWodDescription(" 21-15-9 thrusters and pull-ups ")
	require.NoError(t, err)
	assert.Equal(t, "21-15-9 thrusters and pull-ups", desc.String())

	single, err := NewWodDescription("x")
	require.NoError(t, err)
	assert.Equal(t, "x", single.String())

	_, err = NewWodDescription(strings.Repeat("d", 1000))
	assert.NoError(t, err)

	_, err = NewWodDescription(strings.Repeat("d", 1001))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewWodDescription("   ")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestParseWodType(t *testing.T) {
	t.Parallel()

	got, err := ParseWodType(" amrap ")
	require.NoError(t, err)
	assert.Equal(t, WodTypeAMRAP, got)

	for _, valid := range []WodType{WodTypeForTime, WodTypeAMRAP, WodTypeEMOM, WodTypeTabata, WodTypeStrength} {
		assert.True(t, valid.IsValid(), string(valid))
	}

	_, err = ParseWodType("HERO")
	assert.ErrorIs(t, err, ErrInvalidWodType)
	assert.ErrorIs(t, err, ErrValidation)
}

func newTestWod(t *testing.T) *Wod {
	t.Helper()

	id, err := NewWodID("fran")
	require.NoError(t, err)
	name, err := NewWodName("Fran")
	require.NoError(t, err)
	desc, err := NewWodDescription("21-15-9 thrusters and pull-ups")
	require.NoError(t, err)

	wod, err := NewWod(id, name, desc, WodTypeForTime, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return wod
}

func TestNewWod(t *testing.T) {
	t.Parallel()

	wod := newTestWod(t)

	assert.Equal(t, "fran", wod.ID().String())
	assert.Equal(t, "Fran", wod.Name().String())
	assert.Equal(t, WodTypeForTime, wod.Type())
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), wod.Date())
	assert.False(t, wod.CreatedAt().IsZero())
}

func TestWod_ChangeNameAndDescription(t *testing.T) {
	t.Parallel()

	wod := newTestWod(t)
	createdAt := wod.CreatedAt()

	name, _ := NewWodName("Heavy Fran")
	desc, _ := NewWodDescription("21-15-9 at 115/80")
	wod.ChangeName(name)
	wod.ChangeDescription(desc)

	assert.Equal(t, "Heavy Fran", wod.Name().String())
	assert.Equal(t, "21-15-9 at 115/80", wod.Description().String())
	assert.Equal(t, "fran", wod.ID().String())
	assert.Equal(t, createdAt, wod.CreatedAt())
}

func TestReconstituteWod(t *testing.T) {
	t.Parallel()

	id, _ := NewWodID("2024-03-01")
	name, _ := NewWodName("Open 24.1")
	desc, _ := NewWodDescription("For time, 15 minute cap")
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, time.February, 28, 9, 15, 0, 0, time.UTC)

	wod, err := ReconstituteWod(id, name, desc, WodTypeForTime, date, createdAt)
	require.NoError(t, err)

	assert.Equal(t, id, wod.ID())
	assert.Equal(t, name, wod.Name())
	assert.Equal(t, desc, wod.Description())
	assert.Equal(t, WodTypeForTime, wod.Type())
	assert.Equal(t, date, wod.Date())
	assert.Equal(t, createdAt, wod.CreatedAt())

	data, err := json.Marshal(wod)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "2024-03-01",
		"name": "Open 24.1",
		"description": "For time, 15 minute cap",
		"type": "FOR_TIME",
		"date": "2024-03-01T00:00:00Z",
		"created_at": "2024-02-28T09:15:00Z"
	}`, string(data))
}

func TestNewWod_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	id, _ := NewWodID("fran")
	name, _ := NewWodName("Fran")
	desc, _ := NewWodDescription("21-15-9 thrusters and pull-ups")
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, wodType := range []WodType{"BOGUS", "", "for_time"} {
		wod, err := NewWod(id, name, desc, wodType, date)
		assert.Nil(t, wod, "type %q", wodType)
		assert.ErrorIs(t, err, ErrInvalidWodType)
		assert.ErrorIs(t, err, ErrValidation)

		wod, err = ReconstituteWod(id, name, desc, wodType, date, date)
		assert.Nil(t, wod, "type %q", wodType)
		assert.ErrorIs(t, err, ErrInvalidWodType)
	}
}
