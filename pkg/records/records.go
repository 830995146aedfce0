// Package records defines the record shapes that flow through the toolmap
// pipeline: raw source tables (bronze), per-source canonical records (silver)
// and merged curated records (gold).
package records

import "strings"

// Kind is the dynamic type of a raw cell.
type Kind uint8

// Cell kinds.
const (
	KindNull Kind = iota
	KindString
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is one raw cell: null, a string, or a list of strings.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	list []string
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a list value. The slice is copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Items returns the list payload and whether v is a list.
func (v Value) Items() ([]string, bool) {
	return v.list, v.kind == KindList
}

// Text stringifies v: null is "", a list is its items joined with ", ".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Raw is one row of a source table keyed by column name.
type Raw map[string]Value

// Get returns the value in column, or null when the column is missing.
func (r Raw) Get(column string) Value {
	if r == nil {
		return Null()
	}
	return r[column]
}

// Table is a raw source table. Columns keeps the source column order.
type Table struct {
	ID      string
	Columns []string
	Rows    []Raw
}

// Silver is a cleaned, canonical-schema record from one source.
type Silver struct {
	Name        string   `json:"name" yaml:"name" parquet:"name"`
	URL         *string  `json:"url" yaml:"url" parquet:"url"`
	Description string   `json:"description" yaml:"description" parquet:"description"`
	Tags        []string `json:"tags" yaml:"tags" parquet:"tags,list"`
	Categories  []string `json:"categories" yaml:"categories" parquet:"categories,list"`
	HasAPI      bool     `json:"has_api" yaml:"has_api" parquet:"has_api"`
	HasFree     bool     `json:"has_free" yaml:"has_free" parquet:"has_free"`
	Domain      *string  `json:"domain" yaml:"domain" parquet:"domain"`
	Source      string   `json:"source" yaml:"source" parquet:"source"`
}

// Gold is a deduplicated record merged from every Silver record of one tool.
type Gold struct {
	Name        string   `json:"name" yaml:"name" parquet:"name"`
	URL         *string  `json:"url" yaml:"url" parquet:"url"`
	Description *string  `json:"description" yaml:"description" parquet:"description"`
	Tags        []string `json:"tags" yaml:"tags" parquet:"tags,list"`
	Categories  []string `json:"categories" yaml:"categories" parquet:"categories,list"`
	HasAPI      bool     `json:"has_api" yaml:"has_api" parquet:"has_api"`
	HasFree     bool     `json:"has_free" yaml:"has_free" parquet:"has_free"`
	Domain      *string  `json:"domain" yaml:"domain" parquet:"domain"`
}

// Key returns the dedupe key of a record: its URL, or "domain|name" without one.
func Key(url, domain *string, name string) string {
	if url != nil {
		return *url
	}
	d := ""
	if domain != nil {
		d = *domain
	}
	return d + "|" + name
}

// Key returns the dedupe key of s.
func (s Silver) Key() string { return Key(s.URL, s.Domain, s.Name) }

// Key returns the dedupe key of g.
func (g Gold) Key() string { return Key(g.URL, g.Domain, g.Name) }

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }

// Deref returns *s or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
