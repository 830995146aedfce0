package differ

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/toolmap/pkg/records"
)

// Differ handles change detection between gold catalogs.
type Differ interface {
	// Tools compares two catalogs keyed by their dedupe key.
	Tools(existing, updated []records.Gold) *Changeset
}

type differ struct {
	ignoreFields map[string]bool
}

// New creates a Differ.
func New(opts ...Option) Differ {
	d := &differ{ignoreFields: make(map[string]bool)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tools compares two catalogs. Updated tools are those whose key exists
// in both with at least one differing field.
func (d *differ) Tools(existing, updated []records.Gold) *Changeset {
	cs := &Changeset{
		Added:   []records.Gold{},
		Updated: []ToolUpdate{},
		Removed: []records.Gold{},
	}

	existingMap := make(map[string]records.Gold, len(existing))
	for _, t := range existing {
		existingMap[t.Key()] = t
	}
	updatedMap := make(map[string]struct{}, len(updated))
	for _, t := range updated {
		updatedMap[t.Key()] = struct{}{}
	}

	for _, t := range updated {
		old, ok := existingMap[t.Key()]
		if !ok {
			cs.Added = append(cs.Added, t)
			continue
		}
		if changes := d.fields(old, t); len(changes) > 0 {
			cs.Updated = append(cs.Updated, ToolUpdate{Key: t.Key(), Existing: old, New: t, Changes: changes})
		}
	}
	for _, t := range existing {
		if _, ok := updatedMap[t.Key()]; !ok {
			cs.Removed = append(cs.Removed, t)
		}
	}

	sort.Slice(cs.Added, func(i, j int) bool { return cs.Added[i].Key() < cs.Added[j].Key() })
	sort.Slice(cs.Removed, func(i, j int) bool { return cs.Removed[i].Key() < cs.Removed[j].Key() })
	sort.Slice(cs.Updated, func(i, j int) bool { return cs.Updated[i].Key < cs.Updated[j].Key })

	cs.summarize()
	return cs
}

func (d *differ) fields(old, updated records.Gold) []FieldChange {
	pairs := []struct {
		field    string
		old, new string
	}{
		{"name", old.Name, updated.Name},
		{"url", records.Deref(old.URL), records.Deref(updated.URL)},
		{"description", records.Deref(old.Description), records.Deref(updated.Description)},
		{"tags", list(old.Tags), list(updated.Tags)},
		{"categories", list(old.Categories), list(updated.Categories)},
		{"has_api", strconv.FormatBool(old.HasAPI), strconv.FormatBool(updated.HasAPI)},
		{"has_free", strconv.FormatBool(old.HasFree), strconv.FormatBool(updated.HasFree)},
		{"domain", records.Deref(old.Domain), records.Deref(updated.Domain)},
	}

	var changes []FieldChange
	for _, p := range pairs {
		if d.ignoreFields[p.field] || p.old == p.new {
			continue
		}
		typ := ChangeTypeUpdate
		switch {
		case p.old == "":
			typ = ChangeTypeAdd
		case p.new == "":
			typ = ChangeTypeRemove
		}
		changes = append(changes, FieldChange{Field: p.field, OldValue: p.old, NewValue: p.new, Type: typ})
	}
	return changes
}

// list renders a string list order-insensitively.
func list(xs []string) string {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return strings.Join(sorted, ", ")
}
