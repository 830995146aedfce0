// Package sources defines the bronze ingestion sources. A source turns one
// external input (CSV exports, a Markdown awesome-list) into raw tables
// whose columns are kept exactly as found.
package sources

import (
	"context"
	"slices"

	"github.com/agentstation/toolmap/pkg/records"
)

// ID represents the identifier of an ingestion source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	CSVID      ID = "csv"
	MarkdownID ID = "markdown"
)

// IDs returns every known source ID.
func IDs() []ID {
	return []ID{CSVID, MarkdownID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source produces raw tables for the bronze stage.
type Source interface {
	// ID returns the source identifier
	ID() ID

	// Fetch reads the source and returns one raw table per input
	Fetch(ctx context.Context) ([]records.Table, error)
}
