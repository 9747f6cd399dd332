package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docsearch/internal/handlers"
	"docsearch/internal/tools"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Registry *tools.Registry
}

// NewRouter creates the API router. All document operations go through the
// operation registry, which enforces capability requirements.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(AuthContext)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.Registry)
	searchHandler := handlers.NewSearchHandler(deps.Registry)
	listHandler := handlers.NewListHandler(deps.Registry)
	getHandler := handlers.NewGetHandler(deps.Registry)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/documents", uploadHandler)
		r.Method(http.MethodGet, "/documents", listHandler)
		r.Method(http.MethodGet, "/documents/{documentID}", getHandler)
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
