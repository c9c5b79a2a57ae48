package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Result is an athlete's recorded performance on a workout. It references
// its Athlete and Wod by identifier only and is immutable once built; a
// corrected result is deleted and recorded again.
type Result struct {
	id          ResultID
	athleteID   AthleteID
	wodID       WodID
	score       Score
	isRx        bool
	notes       string
	completedAt time.Time
}

// NewResult records a fresh result stamped with the current time.
// notes is optional and trimmed; whitespace-only notes are dropped.
func NewResult(
	id ResultID,
	athleteID AthleteID,
	wodID WodID,
	score Score,
	isRx bool,
	notes string,
) *Result {
	return &Result{
		id:          id,
		athleteID:   athleteID,
		wodID:       wodID,
		score:       score,
		isRx:        isRx,
		notes:       strings.TrimSpace(notes),
		completedAt: time.Now().UTC(),
	}
}

// ReconstituteResult rebuilds a Result loaded from storage.
func ReconstituteResult(
	id ResultID,
	athleteID AthleteID,
	wodID WodID,
	score Score,
	isRx bool,
	notes string,
	completedAt time.Time,
) *Result {
	return &Result{
		id:          id,
		athleteID:   athleteID,
		wodID:       wodID,
		score:       score,
		isRx:        isRx,
		notes:       notes,
		completedAt: completedAt,
	}
}

// ID returns the result's identifier.
func (r *Result) ID() ResultID { return r.id }

// AthleteID returns the athlete who performed the workout.
func (r *Result) AthleteID() AthleteID { return r.athleteID }

// WodID returns the workout the result was logged against.
func (r *Result) WodID() WodID { return r.wodID }

// Score returns the recorded performance.
func (r *Result) Score() Score { return r.score }

// IsRx reports whether the workout was done as prescribed.
func (r *Result) IsRx() bool { return r.isRx }

// CompletedAt returns when the result was recorded, in UTC.
func (r *Result) CompletedAt() time.Time { return r.completedAt }

// Notes returns the free-text note; ok is false when none was given.
func (r *Result) Notes() (notes string, ok bool) {
	return r.notes, r.notes != ""
}

// MarshalJSON renders the result for the wire.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string    `json:"id"`
		AthleteID   string    `json:"athlete_id"`
		WodID       string    `json:"wod_id"`
		Score       Score     `json:"score"`
		Display     string    `json:"display"`
		IsRx        bool      `json:"is_rx"`
		Notes       string    `json:"notes,omitempty"`
		CompletedAt time.Time `json:"completed_at"`
	}{
		ID:          r.id.String(),
		AthleteID:   r.athleteID.String(),
		WodID:       r.wodID.String(),
		Score:       r.score,
		Display:     r.score.String(),
		IsRx:        r.isRx,
		Notes:       r.notes,
		CompletedAt: r.completedAt,
	})
}

// BestResult returns the result with the best score, or nil when results is
// empty. Scores are compared with IsBetterThan, so on a tie the earliest
// entry in the slice wins. All results must share one score kind.
func BestResult(results []*Result) *Result {
	if len(results) == 0 {
		return nil
	}

	best := results[0]
	for _, candidate := range results[1:] {
		if candidate.score.IsBetterThan(best.score) {
			best = candidate
		}
	}
	return best
}
