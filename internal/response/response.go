// Package response provides the discriminated `{data}` / `{error}` JSON
// envelope shared by every HTTP endpoint. Per the error handling design,
// application-level errors answer HTTP 200 with an ErrorResponse body —
// the HTTP status line is never the signal, the envelope shape is.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
)

// DataResponse wraps a successful result. Data may be the zero value of T
// (e.g. a nil pointer) when an operation intentionally has no match —
// GetMetadata's "no match" case wraps a nil *domain.Game this way rather
// than surfacing NotFound.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ErrorResponse wraps an application-level error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes status with body marshaled as JSON.
func JSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.MarshalWrite(w, body); err != nil {
		if logger != nil {
			logger.Error("failed to encode JSON response", "error", err)
		}
	}
}

// Data writes a DataResponse[T] with HTTP 200.
func Data[T any](w http.ResponseWriter, data T, logger *slog.Logger) {
	JSON(w, http.StatusOK, DataResponse[T]{Data: data}, logger)
}

// Error writes an ErrorResponse with HTTP 200, per the envelope discipline:
// application errors are never signaled via the HTTP status line.
func Error(w http.ResponseWriter, message string, logger *slog.Logger) {
	JSON(w, http.StatusOK, ErrorResponse{Error: message}, logger)
}

// HandleError writes the appropriate ErrorResponse for err. *apperr.Error
// values contribute their client-facing Message; any other error is logged
// and surfaced as a generic internal error message.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *apperr.Error
	if apperr.As(err, &appErr) {
		Error(w, appErr.Message, logger)
		return
	}

	if logger != nil {
		logger.Error("unhandled error", "error", err)
	}
	Error(w, "internal server error", logger)
}
