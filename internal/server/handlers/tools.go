package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/toolmap/internal/server/response"
	"github.com/agentstation/toolmap/internal/store"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// SearchResult is the data of a /search response.
type SearchResult struct {
	Items  []store.Tool `json:"items"`
	Query  string       `json:"q"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// HandleSearch handles GET /search?q=&limit=&offset=.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	tools, err := h.repo.Search(r.Context(), params)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	if tools == nil {
		tools = []store.Tool{}
	}

	response.OK(w, SearchResult{
		Items:  tools,
		Query:  params.Query,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// HandleGetTool handles GET /tool/{id}.
func (h *Handlers) HandleGetTool(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		response.NotFound(w, "Tool ID required", "")
		return
	}

	tool, err := h.repo.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.OK(w, tool)
}

// parseSearchParams reads the query string. Missing values take the
// defaults; limit and offset are then clamped to their valid ranges.
func parseSearchParams(r *http.Request) (store.SearchParams, error) {
	query := r.URL.Query()
	params := store.SearchParams{
		Query: strings.TrimSpace(query.Get("q")),
		Limit: constants.DefaultSearchLimit,
	}

	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.NewValidationError("limit", v, "must be an integer")
		}
		params.Limit = max(n, 1)
	}
	if v := query.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.NewValidationError("offset", v, "must be an integer")
		}
		params.Offset = n
	}
	return params.Normalize(), nil
}
