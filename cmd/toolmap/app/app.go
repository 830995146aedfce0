// Package app wires configuration, logging, the pipeline and the database
// for the toolmap CLI.
package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/internal/server"
	"github.com/agentstation/toolmap/internal/server/middleware"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/internal/sources/csvsource"
	"github.com/agentstation/toolmap/internal/sources/markdown"
	"github.com/agentstation/toolmap/internal/store/postgres"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/mapper"
	"github.com/agentstation/toolmap/pkg/normalize"
	"github.com/agentstation/toolmap/pkg/taxonomy"
)

// App holds the configuration and logger shared by every command.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates an App, loading configuration from the environment and the
// default config file locations.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string { return a.config.Format }

// DataDir returns the artifact root.
func (a *App) DataDir() string { return a.config.DataDir }

// Sources returns the bronze sources, all of them when ids is empty.
func (a *App) Sources(ids ...sources.ID) ([]sources.Source, error) {
	if len(ids) == 0 {
		ids = sources.IDs()
	}

	srcs := make([]sources.Source, 0, len(ids))
	for _, id := range ids {
		switch id {
		case sources.CSVID:
			srcs = append(srcs, csvsource.New(
				csvsource.WithDir(filepath.Join(a.config.DataDir, constants.SourcesDir)),
				csvsource.WithGlob(a.config.CSVGlob),
			))
		case sources.MarkdownID:
			srcs = append(srcs, markdown.New(
				markdown.WithURL(a.config.EUDKRawURL),
				markdown.WithToken(a.config.GitHubToken),
			))
		default:
			return nil, errors.NewValidationError("source", id, "unknown source")
		}
	}
	return srcs, nil
}

// Normalizer builds the silver normalizer, applying the taxonomy and alias
// override files when configured.
func (a *App) Normalizer() (*normalize.Normalizer, error) {
	var opts []normalize.Option
	if a.config.TaxonomyFile != "" {
		t, err := taxonomy.Load(a.config.TaxonomyFile)
		if err != nil {
			return nil, errors.NewConfigError("taxonomy_file", "failed to load taxonomy", err)
		}
		opts = append(opts, normalize.WithTaxonomy(t))
	}
	if a.config.AliasesFile != "" {
		aliases, err := mapper.LoadAliases(a.config.AliasesFile)
		if err != nil {
			return nil, errors.NewConfigError("aliases_file", "failed to load column aliases", err)
		}
		opts = append(opts, normalize.WithAliases(aliases))
	}
	return normalize.New(opts...), nil
}

// Pipeline builds a pipeline over the data directory.
func (a *App) Pipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	srcs, err := a.Sources()
	if err != nil {
		return nil, err
	}
	n, err := a.Normalizer()
	if err != nil {
		return nil, err
	}

	all := append([]pipeline.Option{
		pipeline.WithSources(srcs...),
		pipeline.WithNormalizer(n),
	}, opts...)
	return pipeline.New(artifacts.New(a.config.DataDir), all...), nil
}

// HasDatabase reports whether database_url is set.
func (a *App) HasDatabase() bool {
	return postgres.NormalizeURL(a.config.DatabaseURL) != ""
}

// Database opens the configured Postgres database.
func (a *App) Database(ctx context.Context) (application.Database, error) {
	db, err := postgres.Open(ctx, a.config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// ServerConfig returns the read API configuration.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.Host != "" {
		cfg.Host = a.config.Host
	}
	if a.config.Port != 0 {
		cfg.Port = a.config.Port
	}
	if a.config.AllowedOrigins != "" {
		cfg.AllowedOrigins = middleware.ParseOrigins(a.config.AllowedOrigins)
	}
	return cfg
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
