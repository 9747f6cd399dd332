package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/service"
	"docsearch/internal/tools"
)

// UploadHandler handles document upload requests. The body is forwarded to
// the uploadDocument operation; the registry enforces the write capability.
type UploadHandler struct {
	registry *tools.Registry
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(registry *tools.Registry) *UploadHandler {
	return &UploadHandler{registry: registry}
}

// ServeHTTP handles POST /api/documents.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "failed to read request body"})
		return
	}
	if !json.Valid(body) {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "malformed JSON payload"})
		return
	}

	result, err := h.registry.Dispatch(ctx, tools.OpUploadDocument, contextutil.CapabilitiesFromContext(ctx), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.InfoContext(ctx, "document uploaded")
	writeJSON(w, http.StatusCreated, result)
}
