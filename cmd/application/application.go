// Package application defines what toolmap commands need from the
// application layer.
//
// Commands accept the Application interface rather than the concrete app
// type so they can be tested with Mock:
//
//	mock := &application.Mock{DataDirFunc: func() string { return t.TempDir() }}
//	cmd := curate.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/internal/server"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/internal/store"
)

// Database is the catalog database: the read repository plus the gold
// loader.
type Database interface {
	store.Repository
	pipeline.Loader
	Close()
}

// Application provides the dependencies commands use.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value, or "" when unset.
	OutputFormat() string

	// DataDir returns the root of the bronze/silver/gold artifacts.
	DataDir() string

	// Sources returns the configured bronze sources. With ids it returns
	// only those, in the given order.
	Sources(ids ...sources.ID) ([]sources.Source, error)

	// Pipeline builds a pipeline over DataDir with the configured sources
	// and normalizer. opts are applied last.
	Pipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error)

	// HasDatabase reports whether a database URL is configured.
	HasDatabase() bool

	// Database opens the catalog database. The caller closes it.
	Database(ctx context.Context) (Database, error)

	// ServerConfig returns the read API configuration.
	ServerConfig() server.Config

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
