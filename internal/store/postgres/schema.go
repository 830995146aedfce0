package postgres

import (
	"context"
)

const schemaSQL = `
create table if not exists tools (
    id          uuid primary key default gen_random_uuid(),
    name        text not null,
    url         text unique,
    description text,
    tags        text[] not null default '{}',
    categories  text[] not null default '{}',
    has_api     boolean not null default false,
    has_free    boolean not null default false,
    domain      text,
    first_seen  timestamptz not null default now(),
    updated_at  timestamptz not null default now(),
    tsv         tsvector generated always as (
        to_tsvector('english', coalesce(name, '') || ' ' || coalesce(description, ''))
    ) stored
);

create index if not exists tools_tsv_idx on tools using gin (tsv);
create index if not exists tools_name_domain_idx on tools (name, domain);
create index if not exists tools_updated_at_idx on tools (updated_at desc);

create table if not exists stage_tools (
    name        text,
    url         text,
    description text,
    tags        text[],
    categories  text[],
    has_api     boolean,
    has_free    boolean,
    domain      text
);
`

// EnsureSchema creates the catalog and staging tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return classify("ensure schema", err)
	}
	return nil
}
