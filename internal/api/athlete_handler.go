package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wodlog-api/internal/api/shared"
	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// AthleteHandler handles athlete-related HTTP requests.
type AthleteHandler struct {
	athletes service.AthleteService
	logger   *slog.Logger
}

// NewAthleteHandler creates a new AthleteHandler.
func NewAthleteHandler(athletes service.AthleteService, logger *slog.Logger) *AthleteHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AthleteHandler")
	}
	return &AthleteHandler{
		athletes: athletes,
		logger:   logger.With(slog.String("component", "athlete_handler")),
	}
}

// CreateAthlete handles POST /api/athletes.
func (h *AthleteHandler) CreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req CreateAthleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	athlete, err := h.athletes.CreateAthlete(r.Context(), req.Name, req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create athlete")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, athlete)
}

// GetAthlete handles GET /api/athletes/{athleteID}.
func (h *AthleteHandler) GetAthlete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "athleteID", domain.NewAthleteID, log)
	if !ok {
		return
	}

	athlete, err := h.athletes.GetAthlete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get athlete")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, athlete)
}

// UpdateAthlete handles PATCH /api/athletes/{athleteID}.
func (h *AthleteHandler) UpdateAthlete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "athleteID", domain.NewAthleteID, log)
	if !ok {
		return
	}

	var req UpdateAthleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	athlete, err := h.athletes.UpdateAthlete(r.Context(), id, service.UpdateAthleteParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update athlete")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, athlete)
}

// DeleteAthlete handles DELETE /api/athletes/{athleteID}.
func (h *AthleteHandler) DeleteAthlete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "athleteID", domain.NewAthleteID, log)
	if !ok {
		return
	}

	if err := h.athletes.DeleteAthlete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete athlete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
