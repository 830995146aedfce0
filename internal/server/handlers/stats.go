package handlers

import (
	"net/http"

	"github.com/agentstation/toolmap/internal/server/response"
	"github.com/agentstation/toolmap/internal/store"
)

const statsCacheKey = "stats"

// HandleStats handles GET /stats. Results are cached for the configured TTL.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(statsCacheKey); ok {
		if stats, ok := cached.(*store.Stats); ok {
			response.OK(w, stats)
			return
		}
	}

	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	h.cache.Set(statsCacheKey, stats)
	response.OK(w, stats)
}
