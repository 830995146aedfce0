package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/records"
)

// Result represents the outcome of a reconciliation operation.
type Result struct {
	// Records are the merged gold records: URL groups first, then fallback
	// groups, each in first-appearance order.
	Records []records.Gold

	// Provenance per gold key; nil unless tracking is enabled.
	Provenance provenance.Map

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Strategy used for reconciliation
	Strategy Strategy

	// Sources lists the distinct input sources, sorted
	Sources []string

	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	RecordsIn           int
	Groups              int
	URLGroups           int
	FallbackGroups      int
	DuplicatesCollapsed int
	ConflictsResolved   int
	TotalTimeMs         int64
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("Merged %d records into %d (%d by url, %d by domain+name), %d duplicates collapsed",
		s.RecordsIn, s.Groups, s.URLGroups, s.FallbackGroups, s.DuplicatesCollapsed)
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Records: []records.Gold{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Sources:   []string{},
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
