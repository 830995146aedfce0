package handlers

import (
	"net/http"

	"github.com/agentstation/toolmap/internal/server/response"
	"github.com/agentstation/toolmap/pkg/logging"
)

// HandleHealth handles GET /health by pinging the database.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Health check failed")
		response.ServiceUnavailable(w, "Database unavailable")
		return
	}
	response.OK(w, map[string]bool{"ok": true})
}
