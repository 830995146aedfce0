// Package normalize turns raw source tables into silver records by composing
// the column mapper, the field cleaner and the category normalizer.
package normalize

import (
	"github.com/agentstation/toolmap/pkg/cleaner"
	"github.com/agentstation/toolmap/pkg/mapper"
	"github.com/agentstation/toolmap/pkg/records"
	"github.com/agentstation/toolmap/pkg/taxonomy"
)

// Normalizer converts raw rows into silver records.
type Normalizer struct {
	aliases    mapper.AliasTable
	categories *taxonomy.Normalizer
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithAliases replaces the default column alias table.
func WithAliases(aliases mapper.AliasTable) Option {
	return func(n *Normalizer) {
		n.aliases = aliases
	}
}

// WithTaxonomy replaces the default category taxonomy.
func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(n *Normalizer) {
		n.categories = taxonomy.NewNormalizer(t)
	}
}

// New returns a Normalizer using the default aliases and taxonomy unless
// overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{aliases: mapper.DefaultAliases()}
	for _, opt := range opts {
		opt(n)
	}
	if n.categories == nil {
		n.categories = taxonomy.NewNormalizer(nil)
	}
	return n
}

// TableResult is the outcome of normalizing one raw table.
type TableResult struct {
	Table      string
	Resolution mapper.Resolution
	Records    []records.Silver
	Rows       int
	Dropped    int
}

// Table normalizes every row of t. Rows without a name are dropped and
// counted; no row aborts the pass.
func (n *Normalizer) Table(t records.Table) TableResult {
	res := TableResult{
		Table:      t.ID,
		Resolution: mapper.Resolve(t.Columns, n.aliases),
		Records:    make([]records.Silver, 0, len(t.Rows)),
		Rows:       len(t.Rows),
	}
	for _, row := range t.Rows {
		rec, ok := n.Record(row, res.Resolution, t.ID)
		if !ok {
			res.Dropped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// Record converts one raw row. It reports false when the cleaned name is
// empty.
func (n *Normalizer) Record(row records.Raw, res mapper.Resolution, source string) (records.Silver, bool) {
	get := func(f mapper.Field) records.Value {
		col, ok := res.Column(f)
		if !ok {
			return records.Null()
		}
		return row.Get(col)
	}

	name := cleaner.Text(get(mapper.FieldName))
	if name == "" {
		return records.Silver{}, false
	}

	url := cleaner.CanonicalURL(get(mapper.FieldURL))
	cats := n.categories.Normalize(
		cleaner.Listify(get(mapper.FieldCategories)),
		cleaner.Listify(get(mapper.FieldTags)),
	)

	return records.Silver{
		Name:        name,
		URL:         url,
		Description: cleaner.Text(get(mapper.FieldDescription)),
		Tags:        cats.Tags,
		Categories:  cats.Categories,
		HasAPI:      cleaner.Bool(get(mapper.FieldHasAPI)),
		HasFree:     cleaner.Bool(get(mapper.FieldHasFree)),
		Domain:      cleaner.Domain(url),
		Source:      source,
	}, true
}
