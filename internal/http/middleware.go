package http

import (
	"log/slog"
	"net/http"
	"strings"

	"docsearch/internal/contextutil"
)

// LoggerMiddleware adds a request-scoped structured logger to the context.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := contextutil.WithLogger(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthContext copies the identity the external gateway established into the
// request context: the acting principal from X-Principal and the granted
// capability set from X-Scopes (comma- or space-separated). The core never
// validates credentials itself; it only checks capability membership at
// dispatch time.
func AuthContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if principal := r.Header.Get("X-Principal"); principal != "" {
			ctx = contextutil.WithPrincipal(ctx, principal)
		}
		if scopes := r.Header.Get("X-Scopes"); scopes != "" {
			ctx = contextutil.WithCapabilities(ctx, splitScopes(scopes))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func splitScopes(scopes string) []string {
	fields := strings.FieldsFunc(scopes, func(r rune) bool {
		return r == ',' || r == ' '
	})
	caps := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			caps = append(caps, f)
		}
	}
	return caps
}

// CORS adds CORS headers to allow cross-origin requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Principal, X-Scopes")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
