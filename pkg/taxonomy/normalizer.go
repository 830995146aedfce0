package taxonomy

import (
	"sort"
	"strings"

	"github.com/agentstation/toolmap/pkg/constants"
)

// Result is the repaired category and tag set of one record.
type Result struct {
	// Categories is sorted, deduplicated and never empty.
	Categories []string
	// Tags holds the record's own tags plus every unknown token, sorted.
	Tags []string
	// Unknown lists the tokens no category claimed, sorted.
	Unknown []string
}

// Normalizer classifies record categories and tags against a taxonomy.
// It holds no per-record state and is safe for concurrent use.
type Normalizer struct {
	taxonomy *Taxonomy
}

// NewNormalizer returns a Normalizer over t, or over the default taxonomy
// when t is nil.
func NewNormalizer(t *Taxonomy) *Normalizer {
	if t == nil {
		t = Default()
	}
	return &Normalizer{taxonomy: t}
}

// Taxonomy returns the taxonomy in use.
func (n *Normalizer) Taxonomy() *Taxonomy {
	return n.taxonomy
}

// Normalize tokenizes both the categories and the tags of a record and
// classifies every token. Matched tokens become canonical categories; the
// rest are merged into tags. When nothing matches, categories is
// ["uncategorized"].
func (n *Normalizer) Normalize(categories, tags []string) Result {
	found := map[string]struct{}{}
	unknown := map[string]struct{}{}

	for _, group := range [][]string{categories, tags} {
		for _, raw := range group {
			for _, tok := range Tokenize(raw) {
				if tok == constants.Uncategorized {
					continue
				}
				if name, ok := n.taxonomy.Classify(tok); ok {
					found[name] = struct{}{}
				} else {
					unknown[tok] = struct{}{}
				}
			}
		}
	}

	res := Result{
		Categories: sortedKeys(found),
		Unknown:    sortedKeys(unknown),
	}
	if len(res.Categories) == 0 {
		res.Categories = []string{constants.Uncategorized}
	}

	seen := map[string]struct{}{}
	outTags := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		outTags[tag] = struct{}{}
		seen[strings.ToLower(tag)] = struct{}{}
	}
	for _, tok := range res.Unknown {
		if _, dup := seen[strings.ToLower(tok)]; dup {
			continue
		}
		outTags[tok] = struct{}{}
	}
	res.Tags = sortedKeys(outTags)

	return res
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
