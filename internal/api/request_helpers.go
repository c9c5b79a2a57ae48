package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/wodlog-api/internal/api/shared"
)

// pathParam parses the named chi URL parameter with a domain constructor.
// On failure it writes a 400 response and returns ok == false.
func pathParam[T any](
	w http.ResponseWriter,
	r *http.Request,
	name string,
	parse func(string) (T, error),
	log *slog.Logger,
) (T, bool) {
	raw := chi.URLParam(r, name)
	value, err := parse(raw)
	if err != nil {
		log.Debug("invalid path parameter", slog.String("param_name", name), slog.String("value", raw))
		HandleAPIError(w, r, err, "")
		var zero T
		return zero, false
	}
	return value, true
}

// decodeAndValidate reads the JSON body into req and runs struct validation.
// On failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return false
	}
	return true
}
