package api

import (
	"github.com/phrazzld/wodlog-api/internal/domain"
)

// CreateAthleteRequest defines the payload for registering an athlete.
type CreateAthleteRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateAthleteRequest defines the payload for PATCH /api/athletes/{id}.
// Omitted fields are left unchanged.
type UpdateAthleteRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateWodRequest defines the payload for publishing a workout. ID and Date
// are optional; Date uses the YYYY-MM-DD form.
type CreateWodRequest struct {
	ID          string `json:"id,omitempty"   validate:"omitempty,max=50"`
	Name        string `json:"name"           validate:"required"`
	Description string `json:"description"    validate:"required"`
	Type        string `json:"type"           validate:"required"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateWodRequest defines the payload for PATCH /api/wods/{id}.
type UpdateWodRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// ScoreRequest is the wire form of a score.
type ScoreRequest struct {
	Type           string   `json:"type"                      validate:"required"`
	PrimaryValue   *float64 `json:"primary_value"             validate:"required"`
	SecondaryValue *float64 `json:"secondary_value,omitempty"`
}

// RecordResultRequest defines the payload for POST /api/results.
type RecordResultRequest struct {
	AthleteID string       `json:"athlete_id"      validate:"required"`
	WodID     string       `json:"wod_id"          validate:"required"`
	Score     ScoreRequest `json:"score"`
	IsRx      bool         `json:"is_rx"`
	Notes     string       `json:"notes,omitempty" validate:"max=1000"`
}

// ResultListResponse wraps an athlete's results for one workout.
type ResultListResponse struct {
	AthleteID string           `json:"athlete_id"`
	WodID     string           `json:"wod_id"`
	Results   []*domain.Result `json:"results"`
}

// PRResponse carries an athlete's personal record for a workout. Result is
// null when nothing has been recorded yet.
type PRResponse struct {
	AthleteID string         `json:"athlete_id"`
	WodID     string         `json:"wod_id"`
	Result    *domain.Result `json:"result"`
}
