package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wodlog-api/internal/api/shared"
	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// PRReader resolves personal records. *service.PRService implements it.
type PRReader interface {
	GetPR(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) (*domain.Result, error)
}

// ResultHandler handles result and personal record HTTP requests.
type ResultHandler struct {
	results service.ResultService
	prs     PRReader
	logger  *slog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results service.ResultService, prs PRReader, logger *slog.Logger) *ResultHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResultHandler")
	}
	return &ResultHandler{
		results: results,
		prs:     prs,
		logger:  logger.With(slog.String("component", "result_handler")),
	}
}

// RecordResult handles POST /api/results.
func (h *ResultHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req RecordResultRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.results.RecordResult(r.Context(), service.RecordResultParams{
		AthleteID:      req.AthleteID,
		WodID:          req.WodID,
		ScoreType:      req.Score.Type,
		PrimaryValue:   *req.Score.PrimaryValue,
		SecondaryValue: req.Score.SecondaryValue,
		IsRx:           req.IsRx,
		Notes:          req.Notes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record result")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// GetResult handles GET /api/results/{id}.
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "id", domain.NewResultID, log)
	if !ok {
		return
	}

	result, err := h.results.GetResult(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get result")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// DeleteResult handles DELETE /api/results/{id}.
func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "id", domain.NewResultID, log)
	if !ok {
		return
	}

	if err := h.results.DeleteResult(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete result")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListResults handles GET /api/athletes/{athleteID}/wods/{wodID}/results.
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	athleteID, wodID, ok := h.athleteAndWod(w, r)
	if !ok {
		return
	}

	results, err := h.results.ListResults(r.Context(), athleteID, wodID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list results")
		return
	}
	if results == nil {
		results = []*domain.Result{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResultListResponse{
		AthleteID: athleteID.String(),
		WodID:     wodID.String(),
		Results:   results,
	})
}

// GetPR handles GET /api/athletes/{athleteID}/wods/{wodID}/pr.
func (h *ResultHandler) GetPR(w http.ResponseWriter, r *http.Request) {
	athleteID, wodID, ok := h.athleteAndWod(w, r)
	if !ok {
		return
	}

	pr, err := h.prs.GetPR(r.Context(), athleteID, wodID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get personal record")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PRResponse{
		AthleteID: athleteID.String(),
		WodID:     wodID.String(),
		Result:    pr,
	})
}

func (h *ResultHandler) athleteAndWod(w http.ResponseWriter, r *http.Request) (domain.AthleteID, domain.WodID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	athleteID, ok := pathParam(w, r, "athleteID", domain.NewAthleteID, log)
	if !ok {
		return domain.AthleteID{}, domain.WodID{}, false
	}
	wodID, ok := pathParam(w, r, "wodID", domain.NewWodID, log)
	if !ok {
		return domain.AthleteID{}, domain.WodID{}, false
	}
	return athleteID, wodID, true
}
