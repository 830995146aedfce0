// Package reconciler merges silver records that describe the same tool into
// gold records. Records with a URL are grouped by canonical URL; records
// without one fall back to (domain, name). Each group is merged field by field
// using a Strategy.
package reconciler

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/records"
)

// Reconciler is the main interface for merging duplicate records.
type Reconciler interface {
	// Records partitions the input into duplicate groups and merges each
	// group into one gold record.
	Records(ctx context.Context, in []records.Silver) (*Result, error)
}

type reconciler struct {
	strategy Strategy
	tracking bool
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		strategy: options.strategy,
		tracking: options.tracking,
	}, nil
}

// group is one duplicate group in first-appearance order.
type group struct {
	key     string
	members []records.Silver
}

// partition groups records by URL, then the URL-less rest by (domain, name).
// Group order follows first appearance; URL groups precede fallback groups.
func partition(in []records.Silver) (byURL, fallback []*group) {
	urlIndex := map[string]*group{}
	fallbackIndex := map[string]*group{}

	for _, s := range in {
		key := s.Key()
		if s.URL != nil {
			g, ok := urlIndex[key]
			if !ok {
				g = &group{key: key}
				urlIndex[key] = g
				byURL = append(byURL, g)
			}
			g.members = append(g.members, s)
			continue
		}
		g, ok := fallbackIndex[key]
		if !ok {
			g = &group{key: key}
			fallbackIndex[key] = g
			fallback = append(fallback, g)
		}
		g.members = append(g.members, s)
	}
	return byURL, fallback
}

// Records merges duplicates. Empty input fails with errors.ErrNoInput.
func (r *reconciler) Records(ctx context.Context, in []records.Silver) (*Result, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("reconcile records: %w", errors.ErrNoInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	result := NewResult()
	result.Metadata.Strategy = r.strategy

	tracker := provenance.NewTracker(r.tracking)
	m := newMerger(r.strategy, tracker)

	byURL, fallback := partition(in)
	groups := append(byURL, fallback...)

	sourceSet := map[string]struct{}{}
	for _, s := range in {
		sourceSet[s.Source] = struct{}{}
	}
	for src := range sourceSet {
		result.Metadata.Sources = append(result.Metadata.Sources, src)
	}
	sort.Strings(result.Metadata.Sources)

	result.Records = make([]records.Gold, 0, len(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gold, conflicts := m.Merge(g.key, g.members)
		result.Records = append(result.Records, gold)
		result.Metadata.Stats.ConflictsResolved += conflicts
	}

	result.Provenance = tracker.Map()
	result.Metadata.Stats.RecordsIn = len(in)
	result.Metadata.Stats.Groups = len(groups)
	result.Metadata.Stats.URLGroups = len(byURL)
	result.Metadata.Stats.FallbackGroups = len(fallback)
	result.Metadata.Stats.DuplicatesCollapsed = len(in) - len(groups)

	if err := r.strategy.ValidateResult(result); err != nil {
		return nil, err
	}
	result.Finalize()

	logger.Debug().
		Int("records_in", len(in)).
		Int("groups", len(groups)).
		Int("url_groups", len(byURL)).
		Int("fallback_groups", len(fallback)).
		Int("conflicts", result.Metadata.Stats.ConflictsResolved).
		Str("strategy", r.strategy.Type().String()).
		Msg("Reconciled records")

	return result, nil
}
