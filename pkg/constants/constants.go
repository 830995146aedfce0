// Package constants provides shared constants used throughout the toolmap codebase.
// This includes timeouts, limits, file permissions, and artifact layout values
// that should be consistent across the pipeline, the CLI and the API.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for fetching remote sources
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful API server shutdown
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds how long the API waits for request headers
	ReadHeaderTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define search paging bounds
const (
	// DefaultSearchLimit is the page size used when the caller sends none
	DefaultSearchLimit = 20

	// MaxSearchLimit is the largest accepted page size
	MaxSearchLimit = 100

	// StatsTopCategories is the number of categories reported by /stats
	StatsTopCategories = 20

	// SourceSHALength is the number of hex characters kept from a source file digest
	SourceSHALength = 16
)

// Stage names
const (
	StageBronze = "bronze"
	StageSilver = "silver"
	StageGold   = "gold"
	StageLoad   = "load"
)

// Artifact layout under the data directory
const (
	// SourcesDir holds the CSV spreadsheets picked up by the csv source
	SourcesDir = "sources"

	// ArtifactExt is the extension of every stage table artifact
	ArtifactExt = ".parquet"

	// GoldToolsFile is the curated table written by the gold stage
	GoldToolsFile = "tools.parquet"

	// GoldProvenanceFile holds per-record merge provenance
	GoldProvenanceFile = "provenance.yaml"

	// GoldChangesFile lists the tools added, updated or removed by the last gold run
	GoldChangesFile = "changes.yaml"

	// ManifestFile records the outcome of the last pipeline run
	ManifestFile = "manifest.yaml"
)

// Column names added by ingestion. Columns with MetaColumnPrefix are never
// mapped onto canonical fields.
const (
	MetaColumnPrefix = "__"
	SourceFileColumn = "__source_file"
	SourceSHAColumn  = "__source_sha"
)

// Category values
const (
	// Uncategorized is assigned when no taxonomy category matches
	Uncategorized = "uncategorized"
)

// Defaults for configuration
const (
	DefaultDataDir        = "data"
	DefaultCSVGlob        = "*.csv"
	DefaultEUDKRawURL     = "https://raw.githubusercontent.com/eudk/awesome-ai-tools/main/README.md"
	DefaultAllowedOrigins = "http://localhost:5173,http://localhost:8000"
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	EUDKTableID           = "eudk"
)
