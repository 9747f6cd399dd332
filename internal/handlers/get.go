package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docsearch/internal/contextutil"
	"docsearch/internal/tools"
)

// GetHandler handles direct metadata lookups by documentId.
type GetHandler struct {
	registry *tools.Registry
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(registry *tools.Registry) *GetHandler {
	return &GetHandler{registry: registry}
}

// ServeHTTP handles GET /api/documents/{documentID}.
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, err := json.Marshal(tools.GetInput{
		DocumentID: chi.URLParam(r, "documentID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.registry.Dispatch(ctx, tools.OpGetDocument, contextutil.CapabilitiesFromContext(ctx), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
