package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/wodlog-api/internal/api/shared"
	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
	"github.com/phrazzld/wodlog-api/internal/service"
	"github.com/phrazzld/wodlog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound),
		errors.Is(err, service.ErrWodNotFound),
		errors.Is(err, service.ErrResultNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrWodNameTaken),
		errors.Is(err, service.ErrWodIDTaken),
		errors.Is(err, service.ErrAthleteHasResults),
		errors.Is(err, service.ErrWodHasResults),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Validation
// messages are built by the domain from field names and bounds, so they are
// passed through; everything else gets a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrAthleteNotFound):
		return "Athlete not found"
	case errors.Is(err, service.ErrWodNotFound):
		return "Wod not found"
	case errors.Is(err, service.ErrResultNotFound):
		return "Result not found"
	case errors.Is(err, service.ErrEmailInUse):
		return "Email already in use"
	case errors.Is(err, service.ErrWodNameTaken):
		return "Wod name already exists"
	case errors.Is(err, service.ErrWodIDTaken):
		return "Wod id already exists"
	case errors.Is(err, service.ErrAthleteHasResults):
		return "Cannot delete an athlete with existing results"
	case errors.Is(err, service.ErrWodHasResults):
		return "Cannot delete a wod with existing results"
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and message for err. When fallback is set
// it replaces the generic message of unexpected (5xx) errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError responds 400 for a request that failed struct
// validation or decoding.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("request validation failed",
		slog.String("error", err.Error()))
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns validator errors into "Invalid <field>:
// <reason>" messages and hides the details of any other error.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(first.Field()), getValidationTagMessage(first.Tag()))
	}
	return "Validation error"
}

// jsonFieldName converts a Go field name such as "PrimaryValue" or
// "AthleteID" to its wire form ("primary_value", "athlete_id").
func jsonFieldName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte", "gt":
		return "too small"
	case "lte", "lt":
		return "too large"
	case "datetime":
		return "invalid date"
	default:
		return "validation failed"
	}
}
