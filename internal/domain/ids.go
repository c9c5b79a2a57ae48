package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	wodIDMinLength = 3
	wodIDMaxLength = 50
)

var (
	wodIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	resultIDPattern = regexp.MustCompile(
		`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
	)
)

// AthleteID identifies an Athlete. It is opaque: any non-blank string is accepted.
type AthleteID struct {
	value string
}

// NewAthleteID validates and trims raw into an AthleteID.
func NewAthleteID(raw string) (AthleteID, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return AthleteID{}, NewValidationError("athlete_id", "is required", ErrEmptyValue)
	}
	return AthleteID{value: normalized}, nil
}

// String returns the normalized identifier.
func (id AthleteID) String() string { return id.value }

// Equals reports whether both identifiers hold the same value.
func (id AthleteID) Equals(other AthleteID) bool { return id.value == other.value }

// IsZero reports whether id was never constructed.
func (id AthleteID) IsZero() bool { return id.value == "" }

// WodID identifies a workout definition. Values are lowercased and limited to
// letters, digits, underscores and hyphens.
type WodID struct {
	value string
}

// NewWodID validates raw and normalizes it to lowercase.
func NewWodID(raw string) (WodID, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return WodID{}, NewValidationError("wod_id", "is required", ErrEmptyValue)
	}

	length := utf8.RuneCountInString(normalized)
	if length < wodIDMinLength {
		return WodID{}, NewValidationError("wod_id",
			fmt.Sprintf("must be at least %d characters", wodIDMinLength), ErrOutOfRange)
	}
	if length > wodIDMaxLength {
		return WodID{}, NewValidationError("wod_id",
			fmt.Sprintf("must not exceed %d characters", wodIDMaxLength), ErrOutOfRange)
	}

	if !wodIDPattern.MatchString(normalized) {
		return WodID{}, NewValidationError("wod_id",
			"can only contain letters, numbers, underscores, and hyphens", ErrInvalidFormat)
	}

	return WodID{value: normalized}, nil
}

// WodIDFromDate builds the conventional date-based identifier, e.g. "2024-01-15".
func WodIDFromDate(date time.Time) (WodID, error) {
	return NewWodID(date.UTC().Format(time.DateOnly))
}

// String returns the normalized identifier.
func (id WodID) String() string { return id.value }

// Equals reports whether both identifiers hold the same value.
func (id WodID) Equals(other WodID) bool { return id.value == other.value }

// IsZero reports whether id was never constructed.
func (id WodID) IsZero() bool { return id.value == "" }

// ResultID identifies a recorded Result. It must be a canonical RFC 4122 UUID
// (versions 1-5) and is stored lowercase.
type ResultID struct {
	value string
}

// NewResultID validates raw as a canonical UUID.
func NewResultID(raw string) (ResultID, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ResultID{}, NewValidationError("result_id", "is required", ErrEmptyValue)
	}
	if !resultIDPattern.MatchString(normalized) {
		return ResultID{}, NewValidationError("result_id", "must be a valid UUID", ErrInvalidFormat)
	}
	return ResultID{value: normalized}, nil
}

// String returns the normalized identifier.
func (id ResultID) String() string { return id.value }

// Equals reports whether both identifiers hold the same value.
func (id ResultID) Equals(other ResultID) bool { return id.value == other.value }

// IsZero reports whether id was never constructed.
func (id ResultID) IsZero() bool { return id.value == "" }
