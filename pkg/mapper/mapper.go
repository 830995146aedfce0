// Package mapper resolves the canonical toolmap fields onto the columns of an
// arbitrary source table using an ordered, case-insensitive alias table.
package mapper

import (
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Field is a canonical record field.
type Field string

// Canonical fields.
const (
	FieldName        Field = "name"
	FieldURL         Field = "url"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldCategories  Field = "categories"
	FieldHasAPI      Field = "has_api"
	FieldHasFree     Field = "has_free"
)

// Fields lists every canonical field in schema order.
var Fields = []Field{
	FieldName,
	FieldURL,
	FieldDescription,
	FieldTags,
	FieldCategories,
	FieldHasAPI,
	FieldHasFree,
}

// AliasTable holds, per canonical field, the ordered list of accepted column
// aliases. Aliases are stored lowercased. An AliasTable is immutable.
type AliasTable struct {
	aliases map[Field][]string
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() AliasTable {
	t, _ := NewAliasTable(map[Field][]string{
		FieldName:        {"name", "tool", "title", "tool_name"},
		FieldURL:         {"url", "website", "link", "homepage"},
		FieldDescription: {"description", "desc", "summary", "about", "bio"},
		FieldTags:        {"tags", "keywords", "labels"},
		FieldCategories:  {"category", "categories", "group", "section"},
		FieldHasAPI:      {"api", "has_api", "provides_api"},
		FieldHasFree:     {"free", "has_free", "freemium"},
	})
	return t
}

// NewAliasTable builds an alias table. Unknown fields are rejected; blank
// aliases are dropped.
func NewAliasTable(m map[Field][]string) (AliasTable, error) {
	out := make(map[Field][]string, len(m))
	for field, aliases := range m {
		if !slices.Contains(Fields, field) {
			return AliasTable{}, errors.NewValidationError("aliases", field, "unknown field "+string(field))
		}
		clean := make([]string, 0, len(aliases))
		for _, a := range aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" {
				clean = append(clean, a)
			}
		}
		out[field] = clean
	}
	return AliasTable{aliases: out}, nil
}

// LoadAliases reads a YAML alias file of the form `field: [alias, ...]`.
// Fields missing from the file keep their default aliases.
func LoadAliases(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AliasTable{}, errors.WrapIO("read", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return AliasTable{}, errors.WrapParse("yaml", path, err)
	}

	merged := DefaultAliases().aliases
	for field, aliases := range raw {
		merged[Field(field)] = aliases
	}
	return NewAliasTable(merged)
}

// Aliases returns a copy of the aliases configured for field.
func (t AliasTable) Aliases(field Field) []string {
	return slices.Clone(t.aliases[field])
}

// Resolution maps each resolved canonical field to its source column.
// Fields without a match are absent.
type Resolution map[Field]string

// Column returns the source column for field, if any.
func (r Resolution) Column(field Field) (string, bool) {
	col, ok := r[field]
	return col, ok
}

// Resolve matches every canonical field against columns. An exact
// case-insensitive alias match wins; otherwise the first column containing an
// alias is taken, trying aliases in order. Metadata columns are skipped.
func Resolve(columns []string, aliases AliasTable) Resolution {
	candidates := make([]string, 0, len(columns))
	lowered := make([]string, 0, len(columns))
	exact := make(map[string]string, len(columns))
	for _, col := range columns {
		if strings.HasPrefix(col, constants.MetaColumnPrefix) {
			continue
		}
		lc := strings.ToLower(col)
		candidates = append(candidates, col)
		lowered = append(lowered, lc)
		if _, seen := exact[lc]; !seen {
			exact[lc] = col
		}
	}

	res := make(Resolution, len(Fields))
	for _, field := range Fields {
		if col, ok := resolveField(aliases.aliases[field], candidates, lowered, exact); ok {
			res[field] = col
		}
	}
	return res
}

func resolveField(aliases, candidates, lowered []string, exact map[string]string) (string, bool) {
	for _, alias := range aliases {
		if col, ok := exact[alias]; ok {
			return col, true
		}
	}
	for _, alias := range aliases {
		for i, lc := range lowered {
			if strings.Contains(lc, alias) {
				return candidates[i], true
			}
		}
	}
	return "", false
}
