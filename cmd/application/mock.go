package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/internal/server"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Mock implements Application for tests. Nil function fields fall back to
// zero values, a no-op logger and a pipeline over DataDir.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	DataDirFunc      func() string
	SourcesFunc      func(ids ...sources.ID) ([]sources.Source, error)
	DatabaseFunc     func(ctx context.Context) (Database, error)
	ServerConfigFunc func() server.Config
	VersionFunc      func() string
}

var _ Application = (*Mock)(nil)

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// DataDir returns the data directory using the mock function or the default.
func (m *Mock) DataDir() string {
	if m.DataDirFunc != nil {
		return m.DataDirFunc()
	}
	return constants.DefaultDataDir
}

// Sources returns sources using the mock function or none.
func (m *Mock) Sources(ids ...sources.ID) ([]sources.Source, error) {
	if m.SourcesFunc != nil {
		return m.SourcesFunc(ids...)
	}
	return nil, nil
}

// Pipeline builds a pipeline over DataDir with the mock's sources.
func (m *Mock) Pipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	srcs, err := m.Sources()
	if err != nil {
		return nil, err
	}
	all := append([]pipeline.Option{pipeline.WithSources(srcs...)}, opts...)
	return pipeline.New(artifacts.New(m.DataDir()), all...), nil
}

// HasDatabase reports whether DatabaseFunc is set.
func (m *Mock) HasDatabase() bool {
	return m.DatabaseFunc != nil
}

// Database returns the database using the mock function or a config error.
func (m *Mock) Database(ctx context.Context) (Database, error) {
	if m.DatabaseFunc != nil {
		return m.DatabaseFunc(ctx)
	}
	return nil, errors.NewConfigError("database_url", "database_url is not set", nil)
}

// ServerConfig returns the server config using the mock function or the default.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
