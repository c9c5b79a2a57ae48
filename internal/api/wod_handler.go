package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/wodlog-api/internal/api/shared"
	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/service"
)

// WodHandler handles workout-related HTTP requests.
type WodHandler struct {
	wods   service.WodService
	logger *slog.Logger
}

// NewWodHandler creates a new WodHandler.
func NewWodHandler(wods service.WodService, logger *slog.Logger) *WodHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WodHandler")
	}
	return &WodHandler{
		wods:   wods,
		logger: logger.With(slog.String("component", "wod_handler")),
	}
}

// CreateWod handles POST /api/wods.
func (h *WodHandler) CreateWod(w http.ResponseWriter, r *http.Request) {
	var req CreateWodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var date time.Time
	if req.Date != "" {
		// Format already checked by the datetime validator.
		date, _ = time.Parse(time.DateOnly, req.Date)
	}

	wod, err := h.wods.CreateWod(r.Context(), service.CreateWodParams{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Date:        date,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create wod")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, wod)
}

// GetWod handles GET /api/wods/{id}.
func (h *WodHandler) GetWod(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "id", domain.NewWodID, log)
	if !ok {
		return
	}

	wod, err := h.wods.GetWod(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get wod")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wod)
}

// UpdateWod handles PATCH /api/wods/{id}.
func (h *WodHandler) UpdateWod(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "id", domain.NewWodID, log)
	if !ok {
		return
	}

	var req UpdateWodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wod, err := h.wods.UpdateWod(r.Context(), id, service.UpdateWodParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update wod")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wod)
}

// DeleteWod handles DELETE /api/wods/{id}.
func (h *WodHandler) DeleteWod(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathParam(w, r, "id", domain.NewWodID, log)
	if !ok {
		return
	}

	if err := h.wods.DeleteWod(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete wod")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
