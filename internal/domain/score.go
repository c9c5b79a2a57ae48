package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScoreKind names the way a workout performance is measured.
type ScoreKind string

// Supported score kinds.
const (
	// ScoreKindTime is a completion time in seconds. Lower is better.
	ScoreKindTime ScoreKind = "TIME"
	// ScoreKindReps is a repetition count. Higher is better.
	ScoreKindReps ScoreKind = "REPS"
	// ScoreKindWeight is a load in pounds. Higher is better.
	ScoreKindWeight ScoreKind = "WEIGHT"
	// ScoreKindRoundsReps is completed rounds plus extra reps. Rounds decide,
	// reps break ties.
	ScoreKindRoundsReps ScoreKind = "ROUNDS_REPS"
)

const (
	maxTimeSeconds = 86400
	maxWeight      = 10000
)

// ParseScoreKind validates a score kind tag. Matching is case-insensitive.
func ParseScoreKind(raw string) (ScoreKind, error) {
	kind := ScoreKind(strings.ToUpper(strings.TrimSpace(raw)))
	if !kind.IsValid() {
		return "", NewValidationError("score", "invalid score type", ErrInvalidScoreKind)
	}
	return kind, nil
}

// IsValid reports whether k is one of the supported score kinds.
func (k ScoreKind) IsValid() bool {
	switch k {
	case ScoreKindTime, ScoreKindReps, ScoreKindWeight, ScoreKindRoundsReps:
		return true
	default:
		return false
	}
}

// Score is an immutable, validated workout performance. The secondary
// magnitude exists only for ScoreKindRoundsReps and is always zero otherwise.
//
// Two Scores are equal (==) when kind, primary and secondary all match.
type Score struct {
	kind      ScoreKind
	primary   float64
	secondary float64
}

// NewScore is the generic constructor. secondary must be set for
// ScoreKindRoundsReps and nil for every other kind. Validation rules are
// those of the per-kind constructors, which NewScore delegates to.
func NewScore(kind ScoreKind, primary float64, secondary *float64) (Score, error) {
	switch kind {
	case ScoreKindTime, ScoreKindReps, ScoreKindWeight:
		if secondary != nil {
			return Score{}, NewValidationError("score",
				"secondary value not allowed for this score type", ErrInvalidFormat)
		}
	case ScoreKindRoundsReps:
		if secondary == nil {
			return Score{}, NewValidationError("score",
				"secondary value required for rounds and reps", ErrInvalidFormat)
		}
		return NewRoundsRepsScore(primary, *secondary)
	default:
		return Score{}, NewValidationError("score", "invalid score type", ErrInvalidScoreKind)
	}

	switch kind {
	case ScoreKindTime:
		return NewTimeScore(primary)
	case ScoreKindReps:
		return NewRepsScore(primary)
	default:
		return NewWeightScore(primary)
	}
}

// NewTimeScore creates a TIME score of 0 to 86400 seconds.
func NewTimeScore(seconds float64) (Score, error) {
	if err := checkFinite(seconds); err != nil {
		return Score{}, err
	}
	if seconds < 0 {
		return Score{}, NewValidationError("score", "time cannot be negative", ErrOutOfRange)
	}
	if seconds > maxTimeSeconds {
		return Score{}, NewValidationError("score", "time cannot exceed 24 hours", ErrOutOfRange)
	}
	return Score{kind: ScoreKindTime, primary: seconds}, nil
}

// NewRepsScore creates a REPS score from a non-negative whole number.
func NewRepsScore(reps float64) (Score, error) {
	if err := checkFinite(reps); err != nil {
		return Score{}, err
	}
	if reps < 0 {
		return Score{}, NewValidationError("score", "reps cannot be negative", ErrOutOfRange)
	}
	if !isWhole(reps) {
		return Score{}, NewValidationError("score", "reps must be a whole number", ErrInvalidFormat)
	}
	return Score{kind: ScoreKindReps, primary: reps}, nil
}

// NewWeightScore creates a WEIGHT score greater than 0 and at most 10000 pounds.
func NewWeightScore(weight float64) (Score, error) {
	if err := checkFinite(weight); err != nil {
		return Score{}, err
	}
	if weight <= 0 {
		return Score{}, NewValidationError("score", "weight must be positive", ErrOutOfRange)
	}
	if weight > maxWeight {
		return Score{}, NewValidationError("score", "weight seems unrealistic", ErrOutOfRange)
	}
	return Score{kind: ScoreKindWeight, primary: weight}, nil
}

// NewRoundsRepsScore creates a ROUNDS_REPS score from non-negative whole numbers.
func NewRoundsRepsScore(rounds, reps float64) (Score, error) {
	if err := checkFinite(rounds); err != nil {
		return Score{}, err
	}
	if err := checkFinite(reps); err != nil {
		return Score{}, err
	}
	if rounds < 0 || reps < 0 {
		return Score{}, NewValidationError("score", "rounds and reps cannot be negative", ErrOutOfRange)
	}
	if !isWhole(rounds) || !isWhole(reps) {
		return Score{}, NewValidationError("score", "rounds and reps must be whole numbers", ErrInvalidFormat)
	}
	return Score{kind: ScoreKindRoundsReps, primary: rounds, secondary: reps}, nil
}

// Kind returns the measurement kind.
func (s Score) Kind() ScoreKind { return s.kind }

// Primary returns seconds, reps, pounds or rounds depending on the kind.
func (s Score) Primary() float64 { return s.primary }

// Secondary returns the extra reps of a ROUNDS_REPS score. ok is false for
// every other kind.
func (s Score) Secondary() (reps float64, ok bool) {
	if s.kind != ScoreKindRoundsReps {
		return 0, false
	}
	return s.secondary, true
}

// Equals reports whether both scores match in kind and magnitudes.
func (s Score) Equals(other Score) bool { return s == other }

// IsBetterThan reports whether s strictly beats other. A full tie is never
// better. Comparing scores of different kinds is a programming error and
// panics with an error wrapping ErrIncompatibleScores.
func (s Score) IsBetterThan(other Score) bool {
	if s.kind != other.kind {
		panic(fmt.Errorf("%w: %q vs %q", ErrIncompatibleScores, s.kind, other.kind))
	}

	switch s.kind {
	case ScoreKindTime:
		return s.primary < other.primary
	case ScoreKindReps, ScoreKindWeight:
		return s.primary > other.primary
	case ScoreKindRoundsReps:
		if s.primary != other.primary {
			return s.primary > other.primary
		}
		return s.secondary > other.secondary
	default:
		panic(fmt.Errorf("%w: unknown kind %q", ErrIncompatibleScores, s.kind))
	}
}

// String formats the score for people: "15:30", "150 reps", "225 lbs",
// "5 rounds + 12 reps".
func (s Score) String() string {
	switch s.kind {
	case ScoreKindTime:
		// Work in whole hundredths so rounding can carry into the minute.
		hundredths := int64(math.Round(s.primary * 100))
		minutes := hundredths / 6000
		rest := hundredths % 6000
		if rest%100 == 0 {
			return fmt.Sprintf("%d:%02d", minutes, rest/100)
		}
		return fmt.Sprintf("%d:%02d.%02d", minutes, rest/100, rest%100)
	case ScoreKindReps:
		return formatNumber(s.primary) + " reps"
	case ScoreKindWeight:
		return formatNumber(s.primary) + " lbs"
	case ScoreKindRoundsReps:
		return fmt.Sprintf("%s rounds + %s reps", formatNumber(s.primary), formatNumber(s.secondary))
	default:
		return "unknown score"
	}
}

// scoreJSON is the persisted and wire form of a Score.
type scoreJSON struct {
	Type           ScoreKind `json:"type"`
	PrimaryValue   float64   `json:"primary_value"`
	SecondaryValue *float64  `json:"secondary_value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	out := scoreJSON{Type: s.kind, PrimaryValue: s.primary}
	if reps, ok := s.Secondary(); ok {
		out.SecondaryValue = &reps
	}
	return json.Marshal(out)
}

// ScoreFromJSON decodes and re-validates a Score produced by MarshalJSON.
// Unknown kinds and malformed payloads are reported as validation errors.
func ScoreFromJSON(data []byte) (Score, error) {
	var raw scoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Score{}, NewValidationError("score", "malformed score payload", ErrInvalidFormat)
	}
	return NewScore(raw.Type, raw.PrimaryValue, raw.SecondaryValue)
}

// UnmarshalJSON implements json.Unmarshaler through ScoreFromJSON, so a
// decoded Score is always valid.
func (s *Score) UnmarshalJSON(data []byte) error {
	parsed, err := ScoreFromJSON(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func checkFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewValidationError("score", "must be a finite number", ErrInvalidFormat)
	}
	return nil
}

func isWhole(v float64) bool {
	return v == math.Trunc(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
