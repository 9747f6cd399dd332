package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/service"
	"docsearch/internal/tools"
)

// SearchHandler handles semantic search requests through the searchDocuments
// operation; the registry enforces the read capability.
type SearchHandler struct {
	registry *tools.Registry
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(registry *tools.Registry) *SearchHandler {
	return &SearchHandler{registry: registry}
}

// ServeHTTP handles POST /api/search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "failed to read request body"})
		return
	}
	if !json.Valid(body) {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "malformed JSON payload"})
		return
	}

	result, err := h.registry.Dispatch(ctx, tools.OpSearchDocuments, contextutil.CapabilitiesFromContext(ctx), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
