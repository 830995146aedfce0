package reconciler

import (
	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/records"
)

// Merger collapses one duplicate group into a gold record.
type Merger interface {
	// Merge merges the members of the group identified by key.
	Merge(key string, group []records.Silver) (records.Gold, int)
}

// merger applies a Strategy field by field and optionally records
// provenance.
type merger struct {
	strategy Strategy
	tracker  provenance.Tracker
}

func newMerger(strategy Strategy, tracker provenance.Tracker) Merger {
	return &merger{
		strategy: strategy,
		tracker:  tracker,
	}
}

// Merge returns the merged record and the number of fields whose members
// disagreed.
func (m *merger) Merge(key string, group []records.Silver) (records.Gold, int) {
	var gold records.Gold
	conflicts := 0

	sources := make([]string, 0, len(group))
	for _, s := range group {
		sources = append(sources, s.Source)
	}
	if m.tracker != nil {
		m.tracker.TrackSources(key, sources)
	}

	for _, field := range Fields {
		candidates := candidatesFor(field, group)
		if disagree(candidates) {
			conflicts++
		}

		value, source, reason := m.strategy.ResolveConflict(field, candidates)
		assign(&gold, field, value)

		if m.tracker != nil && value != nil {
			m.tracker.Track(key, provenance.Provenance{
				Source: source,
				Field:  string(field),
				Value:  value,
				Policy: string(m.strategy.Policy(field)) + ": " + reason,
			})
		}
	}

	return gold, conflicts
}

func assign(g *records.Gold, field Field, value any) {
	switch field {
	case FieldName:
		g.Name, _ = value.(string)
	case FieldURL:
		g.URL = optional(value)
	case FieldDescription:
		g.Description = optional(value)
	case FieldTags:
		g.Tags = list(value)
	case FieldCategories:
		g.Categories = list(value)
	case FieldHasAPI:
		g.HasAPI, _ = value.(bool)
	case FieldHasFree:
		g.HasFree, _ = value.(bool)
	case FieldDomain:
		g.Domain = optional(value)
	}
}

// optional maps a resolved value to a nullable string; "" becomes nil.
func optional(value any) *string {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func list(value any) []string {
	if l, ok := value.([]string); ok && l != nil {
		return l
	}
	return []string{}
}

// disagree reports whether the candidates hold more than one distinct scalar
// value. List fields never conflict.
func disagree(candidates []Candidate) bool {
	var first any
	seen := false
	for _, c := range candidates {
		switch c.Value.(type) {
		case []string:
			return false
		}
		if !seen {
			first, seen = c.Value, true
			continue
		}
		if c.Value != first {
			return true
		}
	}
	return false
}
