package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/internal/cmd/globals"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// isolate points HOME at an empty directory and clears the variables
// LoadConfig reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"DATA_DIR", "CSV_GLOB", "EUDK_RAW_URL", "TAXONOMY_FILE", "ALIASES_FILE",
		"DATABASE_URL", "ALLOWED_ORIGINS", "HOST", "PORT", "LOG_LEVEL", "FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultDataDir, config.DataDir)
	assert.Equal(t, constants.DefaultCSVGlob, config.CSVGlob)
	assert.Equal(t, constants.DefaultEUDKRawURL, config.EUDKRawURL)
	assert.Equal(t, constants.DefaultAllowedOrigins, config.AllowedOrigins)
	assert.Equal(t, constants.DefaultHost, config.Host)
	assert.Equal(t, constants.DefaultPort, config.Port)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Empty(t, config.DatabaseURL)
	assert.Empty(t, config.LogLevel)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DATA_DIR", "/srv/toolmap")
	t.Setenv("CSV_GLOB", "export_*.csv")
	t.Setenv("DATABASE_URL", "postgresql+psycopg://app@db/tools")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/toolmap", config.DataDir)
	assert.Equal(t, "export_*.csv", config.CSVGlob)
	assert.Equal(t, "postgresql+psycopg://app@db/tools", config.DatabaseURL)
	assert.Equal(t, 9000, config.Port)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "toolmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir: /var/lib/toolmap
taxonomy_file: taxonomy.yaml
allowed_origins: "*"
port: 9100
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/toolmap", config.DataDir)
	assert.Equal(t, "taxonomy.yaml", config.TaxonomyFile)
	assert.Equal(t, "*", config.AllowedOrigins)
	assert.Equal(t, 9100, config.Port)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "toolmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /from/file\n"), 0o644))
	t.Setenv("DATA_DIR", "/from/env")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", config.DataDir)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{DataDir: "data", Format: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(&globals.Flags{Verbose: true, DataDir: "/tmp/d"})
	assert.True(t, config.Verbose)
	assert.Equal(t, "/tmp/d", config.DataDir)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(&globals.Flags{Format: "json", LogLevel: "trace"})
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)

	config.UpdateFromFlags(nil)
	assert.Equal(t, "json", config.Format)
}
