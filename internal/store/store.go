// Package store defines the read model of the curated catalog as served
// by the API, plus the repository contract the database layer fulfils.
package store

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/pkg/constants"
)

// Tool is one curated tool as persisted in the catalog database.
type Tool struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	URL         *string    `json:"url" yaml:"url"`
	Description *string    `json:"description" yaml:"description"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Categories  []string   `json:"categories" yaml:"categories"`
	HasAPI      bool       `json:"has_api" yaml:"has_api"`
	HasFree     bool       `json:"has_free" yaml:"has_free"`
	Domain      *string    `json:"domain,omitempty" yaml:"domain,omitempty"`
	FirstSeen   *time.Time `json:"first_seen,omitempty" yaml:"first_seen,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SearchParams selects a page of search results.
type SearchParams struct {
	Query  string
	Limit  int
	Offset int
}

// Normalize clamps Limit to [1, MaxSearchLimit], defaulting zero to
// DefaultSearchLimit, and Offset to zero or more.
func (p SearchParams) Normalize() SearchParams {
	switch {
	case p.Limit == 0:
		p.Limit = constants.DefaultSearchLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > constants.MaxSearchLimit:
		p.Limit = constants.MaxSearchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// CategoryCount is the number of tools listed under one category.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int64  `json:"count" yaml:"count"`
}

// Stats summarizes the catalog.
type Stats struct {
	Total         int64           `json:"total" yaml:"total"`
	TopCategories []CategoryCount `json:"top_categories" yaml:"top_categories"`
}

// Repository is the read side of the catalog.
type Repository interface {
	// Ping checks database connectivity
	Ping(ctx context.Context) error
	// Search returns tools matching the query, best matches first
	Search(ctx context.Context, params SearchParams) ([]Tool, error)
	// Get returns one tool by ID
	Get(ctx context.Context, id string) (*Tool, error)
	// Stats returns the catalog totals and most common categories
	Stats(ctx context.Context) (*Stats, error)
}
