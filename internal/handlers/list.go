package handlers

import (
	"encoding/json"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/tools"
)

// ListHandler handles metadata listing requests by uploader or tag.
type ListHandler struct {
	registry *tools.Registry
}

// NewListHandler creates a new ListHandler.
func NewListHandler(registry *tools.Registry) *ListHandler {
	return &ListHandler{registry: registry}
}

// ServeHTTP handles GET /api/documents?uploader=...|tag=...
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, err := json.Marshal(tools.ListInput{
		Uploader: r.URL.Query().Get("uploader"),
		Tag:      r.URL.Query().Get("tag"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.registry.Dispatch(ctx, tools.OpListDocuments, contextutil.CapabilitiesFromContext(ctx), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
