package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	wodNameMinLength        = 2
	wodNameMaxLength        = 100
	wodDescriptionMinLength = 1
	wodDescriptionMaxLength = 1000
)

// WodType tags the format of a workout.
type WodType string

// Supported workout formats.
const (
	WodTypeForTime  WodType = "FOR_TIME"
	WodTypeAMRAP    WodType = "AMRAP"
	WodTypeEMOM     WodType = "EMOM"
	WodTypeTabata   WodType = "TABATA"
	WodTypeStrength WodType = "STRENGTH"
)

// ParseWodType validates a workout type tag. Matching is case-insensitive.
func ParseWodType(raw string) (WodType, error) {
	t := WodType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", NewValidationError("type", "is not a supported workout type", ErrInvalidWodType)
	}
	return t, nil
}

// IsValid reports whether t is one of the supported workout types.
func (t WodType) IsValid() bool {
	switch t {
	case WodTypeForTime, WodTypeAMRAP, WodTypeEMOM, WodTypeTabata, WodTypeStrength:
		return true
	default:
		return false
	}
}

// WodName is a trimmed workout name of 2 to 100 characters.
type WodName struct {
	value string
}

// NewWodName validates and trims raw.
func NewWodName(raw string) (WodName, error) {
	normalized, err := boundedText("name", raw, wodNameMinLength, wodNameMaxLength)
	if err != nil {
		return WodName{}, err
	}
	return WodName{value: normalized}, nil
}

// String returns the normalized name.
func (n WodName) String() string { return n.value }

// Equals compares by normalized value.
func (n WodName) Equals(other WodName) bool { return n.value == other.value }

// WodDescription is a trimmed workout description of 1 to 1000 characters.
type WodDescription struct {
	value string
}

// NewWodDescription validates and trims raw.
func NewWodDescription(raw string) (WodDescription, error) {
	normalized, err := boundedText("description", raw, wodDescriptionMinLength, wodDescriptionMaxLength)
	if err != nil {
		return WodDescription{}, err
	}
	return WodDescription{value: normalized}, nil
}

// String returns the normalized description.
func (d WodDescription) String() string { return d.value }

// Equals compares by normalized value.
func (d WodDescription) Equals(other WodDescription) bool { return d.value == other.value }

// Wod is the aggregate root for a dated workout definition.
type Wod struct {
	id          WodID
	name        WodName
	description WodDescription
	wodType     WodType
	date        time.Time
	createdAt   time.Time
}

// NewWod creates a fresh Wod stamped with the current time. It rejects a
// wodType that is not one of the supported workout types.
func NewWod(id WodID, name WodName, description WodDescription, wodType WodType, date time.Time) (*Wod, error) {
	return ReconstituteWod(id, name, description, wodType, date, time.Now().UTC())
}

// ReconstituteWod rebuilds a Wod loaded from storage. The workout type is
// checked the same way as in NewWod.
func ReconstituteWod(
	id WodID,
	name WodName,
	description WodDescription,
	wodType WodType,
	date time.Time,
	createdAt time.Time,
) (*Wod, error) {
	if !wodType.IsValid() {
		return nil, NewValidationError("type", "is not a supported workout type", ErrInvalidWodType)
	}
	return &Wod{
		id:          id,
		name:        name,
		description: description,
		wodType:     wodType,
		date:        date,
		createdAt:   createdAt,
	}, nil
}

// ChangeName replaces the workout name.
func (w *Wod) ChangeName(name WodName) {
	w.name = name
}

// ChangeDescription replaces the workout description.
func (w *Wod) ChangeDescription(description WodDescription) {
	w.description = description
}

// ID returns the workout identifier.
func (w *Wod) ID() WodID { return w.id }

// Name returns the workout name.
func (w *Wod) Name() WodName { return w.name }

// Description returns the workout description.
func (w *Wod) Description() WodDescription { return w.description }

// Type returns the workout format.
func (w *Wod) Type() WodType { return w.wodType }

// Date returns the day the workout is programmed for.
func (w *Wod) Date() time.Time { return w.date }

// CreatedAt returns when the workout was first stored.
func (w *Wod) CreatedAt() time.Time { return w.createdAt }

// MarshalJSON renders the workout for the wire.
func (w *Wod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Type        WodType   `json:"type"`
		Date        time.Time `json:"date"`
		CreatedAt   time.Time `json:"created_at"`
	}{
		ID:          w.id.String(),
		Name:        w.name.String(),
		Description: w.description.String(),
		Type:        w.wodType,
		Date:        w.date,
		CreatedAt:   w.createdAt,
	})
}
