package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/service"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP statuses and writes
// the response. Validation problems are the caller's fault; embedding and
// storage failures point at an unavailable collaborator.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := contextutil.LoggerFromContext(r.Context())

	status := http.StatusInternalServerError

	var validationErr *service.ValidationError
	var embeddingErr *service.EmbeddingError
	var storageErr *service.StorageError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownOperation):
		status = http.StatusNotFound
	case errors.As(err, &embeddingErr):
		status = http.StatusBadGateway
	case errors.As(err, &storageErr):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "error", err, "status", status)
	} else {
		logger.WarnContext(r.Context(), "request rejected", "error", err, "status", status)
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
