package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ErrorDetail is the machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest writes a 400 for input rejected before reaching the service
// (e.g. missing or malformed body, unparseable path id).
func badRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusBadRequest, "validation_error", message)
}

// writeServiceError maps a service error onto the HTTP contract:
// ErrValidation → 400, ErrForbidden → 403, ErrNotFound → 404, anything else → 500.
// notFound names what was being looked up (e.g. "trip not found"), since
// only the handler knows that.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		badRequest(w, validationMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		writeErrorBody(w, http.StatusForbidden, "forbidden", "you don't have permission to access this trip")
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", notFound)
	default:
		s.log.ErrorContext(r.Context(), "unhandled service error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation error.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
func validationMessage(err error) string {
	_, msg, ok := strings.Cut(err.Error(), domain.ErrValidation.Error()+": ")
	if !ok {
		return err.Error()
	}
	return msg
}
