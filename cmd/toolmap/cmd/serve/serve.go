// Package serve provides the read API command.
package serve

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/server"
	"github.com/agentstation/toolmap/internal/server/middleware"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "catalog",
		Short:   "Serve the read-only catalog API",
		Long: `Serve exposes the Postgres catalog over HTTP:

  GET /health      database connectivity
  GET /search      full-text search (?q=, ?limit=, ?offset=)
  GET /tool/{id}   one tool by id
  GET /stats       tool count and top categories

Every response is a {"data": ..., "error": ...} envelope.`,
		Example: `  toolmap serve
  toolmap serve --port 9000 --cors-origins "https://catalog.example.com"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, app.ServerConfig())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := app.Logger()

			db, err := app.Database(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Info().
				Str("host", cfg.Host).
				Int("port", cfg.Port).
				Strs("origins", cfg.AllowedOrigins).
				Dur("stats_cache_ttl", cfg.StatsCacheTTL).
				Msg("Starting API server")
			return server.New(db, cfg, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("host", "", "bind address (overrides host)")
	cmd.Flags().Int("port", 0, "server port (overrides port)")
	cmd.Flags().String("cors-origins", "", "comma-separated allowed origins (overrides allowed_origins)")
	cmd.Flags().Duration("cache-ttl", 30*time.Second, "/stats cache TTL, 0 disables caching")
	cmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", 10*time.Second, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", 120*time.Second, "HTTP idle timeout")
	return cmd
}

// parseConfig applies the flags that were set on top of base.
func parseConfig(cmd *cobra.Command, base server.Config) (server.Config, error) {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("host") {
		host, err := flags.GetString("host")
		if err != nil {
			return cfg, err
		}
		cfg.Host = host
	}
	if flags.Changed("port") {
		port, err := flags.GetInt("port")
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}
	if flags.Changed("cors-origins") {
		origins, err := flags.GetString("cors-origins")
		if err != nil {
			return cfg, err
		}
		cfg.AllowedOrigins = middleware.ParseOrigins(origins)
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"cache-ttl", &cfg.StatsCacheTTL},
		{"read-timeout", &cfg.ReadTimeout},
		{"write-timeout", &cfg.WriteTimeout},
		{"idle-timeout", &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if !flags.Changed(d.name) {
			continue
		}
		v, err := flags.GetDuration(d.name)
		if err != nil {
			return cfg, err
		}
		*d.dst = v
	}
	return cfg, nil
}
