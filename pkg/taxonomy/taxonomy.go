// Package taxonomy maps free-text category and tag tokens onto a fixed set of
// canonical categories. Tokens that match nothing spill over into tags so they
// stay searchable.
package taxonomy

import (
	_ "embed"
	"os"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

//go:embed default_taxonomy.yaml
var defaultTaxonomyYAML []byte

// Taxonomy is an immutable mapping of canonical categories to synonym tokens,
// with the derived reverse lookup from token to category.
type Taxonomy struct {
	synonyms map[string][]string
	names    []string
	lookup   map[string]string
}

// file is the on-disk YAML layout.
type file struct {
	Categories map[string][]string `yaml:"categories"`
}

// New builds a taxonomy. Category names and synonyms are cleaned the same way
// input tokens are. A synonym claimed by two categories is rejected.
func New(categories map[string][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		synonyms: make(map[string][]string, len(categories)),
		lookup:   make(map[string]string),
	}

	for rawName, rawSynonyms := range categories {
		name := CleanToken(rawName)
		if name == "" {
			return nil, errors.NewValidationError("categories", rawName, "empty category name")
		}
		if name == constants.Uncategorized {
			return nil, errors.NewValidationError("categories", rawName, "reserved category name")
		}
		if _, dup := t.synonyms[name]; dup {
			return nil, errors.NewValidationError("categories", rawName, "duplicate category "+name)
		}

		syns := make([]string, 0, len(rawSynonyms))
		for _, raw := range rawSynonyms {
			syn := CleanToken(raw)
			if syn == "" || syn == name || slices.Contains(syns, syn) {
				continue
			}
			syns = append(syns, syn)
		}
		sort.Strings(syns)
		t.synonyms[name] = syns
		t.names = append(t.names, name)
	}

	for _, name := range t.names {
		for _, syn := range t.synonyms[name] {
			if owner, ok := t.lookup[syn]; ok && owner != name {
				return nil, errors.NewValidationError("categories", syn, "synonym claimed by "+owner+" and "+name)
			}
			t.lookup[syn] = name
		}
	}
	sort.Strings(t.names)

	return t, nil
}

// Parse reads a taxonomy from YAML.
func Parse(data []byte) (*Taxonomy, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if len(f.Categories) == 0 {
		return nil, errors.NewValidationError("categories", nil, "taxonomy has no categories")
	}
	return New(f.Categories)
}

// Load reads a taxonomy YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.WrapResource("load", "taxonomy", path, err)
	}
	return t, nil
}

// Default returns the embedded taxonomy.
func Default() *Taxonomy {
	t, err := Parse(defaultTaxonomyYAML)
	if err != nil {
		panic("taxonomy: invalid embedded default: " + err.Error())
	}
	return t
}

// Categories returns the sorted canonical category names.
func (t *Taxonomy) Categories() []string {
	return slices.Clone(t.names)
}

// Synonyms returns the sorted synonyms of a canonical category.
func (t *Taxonomy) Synonyms(category string) []string {
	return slices.Clone(t.synonyms[category])
}

// Classify maps a cleaned token to its canonical category. Synonyms are
// checked before verbatim category names.
func (t *Taxonomy) Classify(token string) (string, bool) {
	if name, ok := t.lookup[token]; ok {
		return name, true
	}
	if _, ok := t.synonyms[token]; ok {
		return token, true
	}
	return "", false
}
