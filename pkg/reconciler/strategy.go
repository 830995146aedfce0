package reconciler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

// Field is a mergeable gold record field.
type Field string

// Mergeable fields, in schema order.
const (
	FieldName        Field = "name"
	FieldURL         Field = "url"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldCategories  Field = "categories"
	FieldHasAPI      Field = "has_api"
	FieldHasFree     Field = "has_free"
	FieldDomain      Field = "domain"
)

// Fields lists every mergeable field.
var Fields = []Field{
	FieldName,
	FieldURL,
	FieldDescription,
	FieldTags,
	FieldCategories,
	FieldHasAPI,
	FieldHasFree,
	FieldDomain,
}

// PolicyType names a per-field conflict resolution policy.
type PolicyType string

// String returns the string representation of a policy type.
func (p PolicyType) String() string {
	return string(p)
}

const (
	// PolicyLongest keeps the longest non-empty string; ties go to the
	// lexicographically smallest.
	PolicyLongest PolicyType = "longest"
	// PolicyFirst keeps the first non-null value in group order.
	PolicyFirst PolicyType = "first"
	// PolicyUnion unions string lists, dropping empties, sorted.
	PolicyUnion PolicyType = "union"
	// PolicyOr is the logical OR of booleans.
	PolicyOr PolicyType = "or"
)

// StrategyType represents the type of reconciliation strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

const (
	// StrategyTypeFieldPolicy resolves every field with its configured policy.
	StrategyTypeFieldPolicy StrategyType = "field-policy"
)

// Candidate is one member's value for a field. Value is nil when the member
// has no value.
type Candidate struct {
	Source string
	Value  any
}

// Strategy defines how duplicate records are merged.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Policy returns the policy applied to field
	Policy(field Field) PolicyType

	// ResolveConflict picks the merged value of field from the candidates,
	// returning the value, the source that supplied it and the reason.
	ResolveConflict(field Field, candidates []Candidate) (any, string, string)

	// ValidateResult validates the reconciliation result
	ValidateResult(result *Result) error
}

// FieldPolicyStrategy merges each field independently with a fixed policy.
type FieldPolicyStrategy struct {
	policies map[Field]PolicyType
}

// DefaultPolicies returns the standard field policies.
func DefaultPolicies() map[Field]PolicyType {
	return map[Field]PolicyType{
		FieldName:        PolicyLongest,
		FieldURL:         PolicyFirst,
		FieldDescription: PolicyLongest,
		FieldTags:        PolicyUnion,
		FieldCategories:  PolicyUnion,
		FieldHasAPI:      PolicyOr,
		FieldHasFree:     PolicyOr,
		FieldDomain:      PolicyFirst,
	}
}

// NewFieldPolicyStrategy creates a strategy from the default policies with
// overrides applied.
func NewFieldPolicyStrategy(overrides map[Field]PolicyType) (Strategy, error) {
	policies := DefaultPolicies()
	for field, policy := range overrides {
		if _, ok := policies[field]; !ok {
			return nil, errors.NewValidationError("field", field, "unknown field")
		}
		if !compatible(field, policy) {
			return nil, errors.NewValidationError("policy", policy,
				fmt.Sprintf("policy %s cannot merge field %s", policy, field))
		}
		policies[field] = policy
	}
	return &FieldPolicyStrategy{policies: policies}, nil
}

// compatible reports whether policy can merge the value type of field.
func compatible(field Field, policy PolicyType) bool {
	switch field {
	case FieldTags, FieldCategories:
		return policy == PolicyUnion
	case FieldHasAPI, FieldHasFree:
		return policy == PolicyOr || policy == PolicyFirst
	default:
		return policy == PolicyLongest || policy == PolicyFirst
	}
}

// Type returns the strategy type.
func (s *FieldPolicyStrategy) Type() StrategyType {
	return StrategyTypeFieldPolicy
}

// Description returns a human-readable description.
func (s *FieldPolicyStrategy) Description() string {
	parts := make([]string, 0, len(Fields))
	for _, f := range Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f, s.policies[f]))
	}
	return "Merges each field by policy: " + strings.Join(parts, ", ")
}

// Policy returns the policy applied to field.
func (s *FieldPolicyStrategy) Policy(field Field) PolicyType {
	return s.policies[field]
}

// ResolveConflict applies the field's policy.
func (s *FieldPolicyStrategy) ResolveConflict(field Field, candidates []Candidate) (any, string, string) {
	switch s.policies[field] {
	case PolicyLongest:
		return resolveLongest(candidates)
	case PolicyUnion:
		if field == FieldCategories {
			candidates = withoutUncategorized(candidates)
		}
		return resolveUnion(candidates)
	case PolicyOr:
		return resolveOr(candidates)
	default:
		return resolveFirst(candidates)
	}
}

// ValidateResult checks that every gold key is unique.
func (s *FieldPolicyStrategy) ValidateResult(result *Result) error {
	if result == nil {
		return &errors.ValidationError{
			Field:   "result",
			Message: "cannot be nil",
		}
	}
	seen := make(map[string]struct{}, len(result.Records))
	for _, g := range result.Records {
		key := g.Key()
		if _, dup := seen[key]; dup {
			return errors.NewValidationError("records", key, "duplicate gold key "+key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func resolveLongest(candidates []Candidate) (any, string, string) {
	best, bestSource, found := "", "", false
	for _, c := range candidates {
		s, ok := c.Value.(string)
		if !ok || s == "" {
			continue
		}
		if !found || len(s) > len(best) || (len(s) == len(best) && s < best) {
			best, bestSource, found = s, c.Source, true
		}
	}
	if found {
		return best, bestSource, "longest non-empty value"
	}
	value, source, _ := resolveFirst(candidates)
	return value, source, "no non-empty value, using first available"
}

func resolveFirst(candidates []Candidate) (any, string, string) {
	for _, c := range candidates {
		if c.Value != nil {
			return c.Value, c.Source, "first non-null value"
		}
	}
	return nil, "", "no value available"
}

func resolveUnion(candidates []Candidate) (any, string, string) {
	set := map[string]struct{}{}
	var contributors []string
	for _, c := range candidates {
		items, _ := c.Value.([]string)
		added := false
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				set[item] = struct{}{}
				added = true
			}
		}
		if added {
			contributors = append(contributors, c.Source)
		}
	}
	out := make([]string, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Strings(out)
	return out, strings.Join(uniqueSorted(contributors), ","), fmt.Sprintf("union of %d members", len(candidates))
}

// withoutUncategorized strips the uncategorized placeholder from every
// candidate when at least one candidate carries a real category.
func withoutUncategorized(candidates []Candidate) []Candidate {
	categorized := false
	for _, c := range candidates {
		items, _ := c.Value.([]string)
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" && item != constants.Uncategorized {
				categorized = true
			}
		}
	}
	if !categorized {
		return candidates
	}
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = c
		items, ok := c.Value.([]string)
		if !ok {
			continue
		}
		kept := make([]string, 0, len(items))
		for _, item := range items {
			if strings.TrimSpace(item) != constants.Uncategorized {
				kept = append(kept, item)
			}
		}
		out[i].Value = kept
	}
	return out
}

func resolveOr(candidates []Candidate) (any, string, string) {
	for _, c := range candidates {
		if b, ok := c.Value.(bool); ok && b {
			return true, c.Source, "logical or"
		}
	}
	source := ""
	if len(candidates) > 0 {
		source = candidates[0].Source
	}
	return false, source, "logical or"
}

func uniqueSorted(in []string) []string {
	set := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// candidatesFor extracts one field's candidate values from a group, in
// group order. Absent pointers become nil values.
func candidatesFor(field Field, group []records.Silver) []Candidate {
	out := make([]Candidate, len(group))
	for i, s := range group {
		var v any
		switch field {
		case FieldName:
			v = s.Name
		case FieldURL:
			if s.URL != nil {
				v = *s.URL
			}
		case FieldDescription:
			v = s.Description
		case FieldTags:
			v = s.Tags
		case FieldCategories:
			v = s.Categories
		case FieldHasAPI:
			v = s.HasAPI
		case FieldHasFree:
			v = s.HasFree
		case FieldDomain:
			if s.Domain != nil {
				v = *s.Domain
			}
		}
		out[i] = Candidate{Source: s.Source, Value: v}
	}
	return out
}
