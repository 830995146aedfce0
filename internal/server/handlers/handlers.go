// Package handlers implements the read API endpoints over a catalog
// repository.
package handlers

import (
	"github.com/agentstation/toolmap/internal/server/cache"
	"github.com/agentstation/toolmap/internal/store"
)

// Handlers serves the catalog endpoints.
type Handlers struct {
	repo  store.Repository
	cache *cache.Cache
}

// New creates a new Handlers instance. A nil cache disables caching.
func New(repo store.Repository, c *cache.Cache) *Handlers {
	return &Handlers{repo: repo, cache: c}
}
