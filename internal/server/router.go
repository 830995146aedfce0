package server

import (
	"net/http"

	"github.com/agentstation/toolmap/internal/server/handlers"
	"github.com/agentstation/toolmap/internal/server/middleware"
	"github.com/agentstation/toolmap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	h := handlers.New(s.repo, s.cache)

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/health", readOnly(h.HandleHealth))
	mux.HandleFunc("/search", readOnly(h.HandleSearch))
	mux.HandleFunc("/tool/{id}", readOnly(h.HandleGetTool))
	mux.HandleFunc("/stats", readOnly(h.HandleStats))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		middleware.CORS(middleware.DefaultCORSConfig(s.config.AllowedOrigins)),
	)(mux)
}

// readOnly rejects every method except GET and HEAD.
func readOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		next(w, r)
	}
}
