package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/records"
)

var stageColumns = []string{"name", "url", "description", "tags", "categories", "has_api", "has_free", "domain"}

const (
	upsertWithURLSQL = `
insert into tools (name, url, description, tags, categories, has_api, has_free, domain, updated_at)
select name, url, description, coalesce(tags, '{}'), coalesce(categories, '{}'), has_api, has_free, domain, now()
  from stage_tools
 where url is not null
on conflict (url) do update
   set name        = excluded.name,
       description = coalesce(excluded.description, tools.description),
       tags        = coalesce(excluded.tags, tools.tags),
       categories  = coalesce(excluded.categories, tools.categories),
       has_api     = tools.has_api or excluded.has_api,
       has_free    = tools.has_free or excluded.has_free,
       domain      = coalesce(excluded.domain, tools.domain),
       updated_at  = now()`

	updateWithoutURLSQL = `
update tools t
   set description = coalesce(s.description, t.description),
       tags        = coalesce(s.tags, t.tags),
       categories  = coalesce(s.categories, t.categories),
       has_api     = t.has_api or s.has_api,
       has_free    = t.has_free or s.has_free,
       updated_at  = now()
  from stage_tools s
 where s.url is null
   and t.name = s.name
   and t.domain is not distinct from s.domain`

	insertWithoutURLSQL = `
insert into tools (name, url, description, tags, categories, has_api, has_free, domain)
select name, null, description, coalesce(tags, '{}'), coalesce(categories, '{}'), has_api, has_free, domain
  from stage_tools s
 where s.url is null
   and not exists (
       select 1 from tools t
        where t.name = s.name
          and t.domain is not distinct from s.domain
   )`
)

// LoadResult reports the outcome of a load.
type LoadResult struct {
	Staged   int64         `json:"staged" yaml:"staged"`
	Upserted int64         `json:"upserted" yaml:"upserted"`
	Updated  int64         `json:"updated" yaml:"updated"`
	Inserted int64         `json:"inserted" yaml:"inserted"`
	Total    int64         `json:"total" yaml:"total"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Load stages tools and merges them into the catalog inside one
// transaction. Rows with a URL upsert on it; rows without one update the
// existing (name, domain) match or are inserted.
func (s *Store) Load(ctx context.Context, tools []records.Gold) (*LoadResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, classify("begin load", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "truncate table stage_tools"); err != nil {
		return nil, classify("truncate stage", err)
	}

	result := &LoadResult{}
	result.Staged, err = tx.CopyFrom(ctx, pgx.Identifier{"stage_tools"}, stageColumns, pgx.CopyFromSlice(len(tools), func(i int) ([]any, error) {
		return stageRow(tools[i]), nil
	}))
	if err != nil {
		return nil, classify("copy stage", err)
	}
	logger.Info().Int64("rows", result.Staged).Msg("Staged gold records")

	tag, err := tx.Exec(ctx, upsertWithURLSQL)
	if err != nil {
		return nil, classify("upsert tools", err)
	}
	result.Upserted = tag.RowsAffected()

	if tag, err = tx.Exec(ctx, updateWithoutURLSQL); err != nil {
		return nil, classify("update tools", err)
	}
	result.Updated = tag.RowsAffected()

	if tag, err = tx.Exec(ctx, insertWithoutURLSQL); err != nil {
		return nil, classify("insert tools", err)
	}
	result.Inserted = tag.RowsAffected()

	if err := tx.QueryRow(ctx, "select count(*) from tools").Scan(&result.Total); err != nil {
		return nil, classify("count tools", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, classify("commit load", err)
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int64("staged", result.Staged).
		Int64("upserted", result.Upserted).
		Int64("updated", result.Updated).
		Int64("inserted", result.Inserted).
		Int64("total", result.Total).
		Dur("duration", result.Duration).
		Msg("Load complete")
	return result, nil
}

// stageRow orders a gold record's fields as stageColumns.
func stageRow(g records.Gold) []any {
	return []any{
		g.Name,
		g.URL,
		g.Description,
		nonNil(g.Tags),
		nonNil(g.Categories),
		g.HasAPI,
		g.HasFree,
		g.Domain,
	}
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
