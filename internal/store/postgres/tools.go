package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agentstation/toolmap/internal/store"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

const toolColumns = `id::text, name, url, description, tags, categories, has_api, has_free, domain, first_seen, updated_at`

const (
	searchSQL = `
select ` + toolColumns + `
  from tools
 where tsv @@ plainto_tsquery('english', $1)
    or name ilike $2
    or description ilike $2
 order by ts_rank_cd(tsv, plainto_tsquery('english', $1)) desc, updated_at desc, name
 limit $3 offset $4`

	recentSQL = `
select ` + toolColumns + `
  from tools
 order by updated_at desc, name
 limit $1 offset $2`

	getSQL = `select ` + toolColumns + ` from tools where id = $1`

	statsSQL = `
with cats as (
    select u.cat
      from tools t
      left join lateral unnest(
          case
              when t.categories is null or cardinality(t.categories) = 0
                  then array['` + constants.Uncategorized + `']::text[]
              else t.categories
          end
      ) as u(cat) on true
)
select cat, count(*) as n
  from cats
 group by cat
 order by n desc, cat
 limit $1`
)

var _ store.Repository = (*Store)(nil)

// Search runs a full-text and substring search over name and description.
// An empty query lists the most recently updated tools.
func (s *Store) Search(ctx context.Context, params store.SearchParams) ([]store.Tool, error) {
	params = params.Normalize()
	q := strings.TrimSpace(params.Query)

	var (
		rows pgx.Rows
		err  error
	)
	if q == "" {
		rows, err = s.pool.Query(ctx, recentSQL, params.Limit, params.Offset)
	} else {
		rows, err = s.pool.Query(ctx, searchSQL, q, "%"+escapeLike(q)+"%", params.Limit, params.Offset)
	}
	if err != nil {
		return nil, classify("search tools", err)
	}

	tools, err := pgx.CollectRows(rows, scanTool)
	if err != nil {
		return nil, classify("search tools", err)
	}
	return tools, nil
}

// Get returns one tool by ID. Malformed IDs are reported as not found.
func (s *Store) Get(ctx context.Context, id string) (*store.Tool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &errors.NotFoundError{Resource: "tool", ID: id}
	}

	rows, err := s.pool.Query(ctx, getSQL, id)
	if err != nil {
		return nil, classify("get tool", err)
	}
	tool, err := pgx.CollectOneRow(rows, scanTool)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &errors.NotFoundError{Resource: "tool", ID: id}
	}
	if err != nil {
		return nil, classify("get tool", err)
	}
	return &tool, nil
}

// Stats returns the total tool count and the most common categories. Tools
// without categories count as uncategorized.
func (s *Store) Stats(ctx context.Context) (*store.Stats, error) {
	stats := &store.Stats{TopCategories: []store.CategoryCount{}}
	if err := s.pool.QueryRow(ctx, "select count(*) from tools").Scan(&stats.Total); err != nil {
		return nil, classify("count tools", err)
	}

	rows, err := s.pool.Query(ctx, statsSQL, constants.StatsTopCategories)
	if err != nil {
		return nil, classify("category stats", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.CategoryCount, error) {
		var c store.CategoryCount
		err := row.Scan(&c.Category, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, classify("category stats", err)
	}
	stats.TopCategories = counts
	return stats, nil
}

func scanTool(row pgx.CollectableRow) (store.Tool, error) {
	var t store.Tool
	err := row.Scan(
		&t.ID, &t.Name, &t.URL, &t.Description, &t.Tags, &t.Categories,
		&t.HasAPI, &t.HasFree, &t.Domain, &t.FirstSeen, &t.UpdatedAt,
	)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Categories == nil {
		t.Categories = []string{}
	}
	return t, err
}

// escapeLike escapes the ILIKE wildcards in a user query.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
