// Package postgres persists gold records into PostgreSQL and serves the
// catalog read queries. Loads go through a staging table so a run either
// lands completely or not at all.
package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// sqlalchemyPrefix is the driver-qualified scheme some deployments put in
// DATABASE_URL.
const sqlalchemyPrefix = "postgresql+psycopg://"

// NormalizeURL rewrites a driver-qualified connection URL to the plain
// postgresql:// form understood by pgx.
func NormalizeURL(databaseURL string) string {
	databaseURL = strings.TrimSpace(databaseURL)
	if strings.HasPrefix(databaseURL, sqlalchemyPrefix) {
		return "postgresql://" + strings.TrimPrefix(databaseURL, sqlalchemyPrefix)
	}
	return databaseURL
}

// Store is a pgx connection pool bound to the catalog schema.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL. An empty URL is a configuration error.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	databaseURL = NormalizeURL(databaseURL)
	if databaseURL == "" {
		return nil, errors.NewConfigError("database_url", "database_url is not set", nil)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.NewConfigError("database_url", "invalid connection string", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, classify("connect", err)
	}

	logging.FromContext(ctx).Debug().
		Str("host", cfg.ConnConfig.Host).
		Str("database", cfg.ConnConfig.Database).
		Msg("Opened database pool")
	return &Store{pool: pool}, nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, "select 1").Scan(&one); err != nil {
		return classify("ping", err)
	}
	return nil
}
