// Package differ compares two gold catalogs and reports which tools were
// added, updated or removed between runs.
package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/toolmap/pkg/records"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Field    string     `json:"field" yaml:"field"`
	OldValue string     `json:"old_value" yaml:"old_value"`
	NewValue string     `json:"new_value" yaml:"new_value"`
	Type     ChangeType `json:"type" yaml:"type"`
}

// ToolUpdate represents an update to an existing tool.
type ToolUpdate struct {
	Key      string        `json:"key" yaml:"key"`
	Existing records.Gold  `json:"existing" yaml:"existing"`
	New      records.Gold  `json:"new" yaml:"new"`
	Changes  []FieldChange `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two catalogs.
type Changeset struct {
	Added   []records.Gold `json:"added" yaml:"added"`
	Updated []ToolUpdate   `json:"updated" yaml:"updated"`
	Removed []records.Gold `json:"removed" yaml:"removed"`
	Summary Summary        `json:"summary" yaml:"summary"`
}

// Summary counts the changes of a changeset.
type Summary struct {
	Added   int `json:"added" yaml:"added"`
	Updated int `json:"updated" yaml:"updated"`
	Removed int `json:"removed" yaml:"removed"`
	Total   int `json:"total" yaml:"total"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.Total > 0
}

func (c *Changeset) summarize() {
	c.Summary = Summary{
		Added:   len(c.Added),
		Updated: len(c.Updated),
		Removed: len(c.Removed),
	}
	c.Summary.Total = c.Summary.Added + c.Summary.Updated + c.Summary.Removed
}

// String returns a one-line description of the summary.
func (s Summary) String() string {
	if s.Total == 0 {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d updated, %d removed", s.Added, s.Updated, s.Removed)
}

// Print returns a human-readable listing of the changeset.
func (c *Changeset) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Changes: %s\n", c.Summary)
	for _, t := range c.Added {
		fmt.Fprintf(&b, "  + %s\n", t.Name)
	}
	for _, u := range c.Updated {
		fmt.Fprintf(&b, "  ~ %s\n", u.New.Name)
		for _, fc := range u.Changes {
			fmt.Fprintf(&b, "      %s: %q -> %q\n", fc.Field, fc.OldValue, fc.NewValue)
		}
	}
	for _, t := range c.Removed {
		fmt.Fprintf(&b, "  - %s\n", t.Name)
	}
	return b.String()
}
