package taxonomy_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/toolmap/pkg/taxonomy"
)

func TestNormalize(t *testing.T) {
	n := taxonomy.NewNormalizer(nil)

	tests := []struct {
		name       string
		categories []string
		tags       []string
		want       taxonomy.Result
	}{
		{
			name:       "synonym maps to canonical",
			categories: []string{"AI Writing"},
			want: taxonomy.Result{
				Categories: []string{"writing"},
				Tags:       []string{},
				Unknown:    []string{},
			},
		},
		{
			name:       "second synonym maps to same category",
			categories: []string{"copywriting"},
			want: taxonomy.Result{
				Categories: []string{"writing"},
				Tags:       []string{},
				Unknown:    []string{},
			},
		},
		{
			name:       "unknown spills into tags",
			categories: []string{"quantum-sensing"},
			want: taxonomy.Result{
				Categories: []string{"uncategorized"},
				Tags:       []string{"quantum-sensing"},
				Unknown:    []string{"quantum-sensing"},
			},
		},
		{
			name:       "tags act as category hints",
			categories: []string{"Video and Music"},
			tags:       []string{"SEO", "Python"},
			want: taxonomy.Result{
				Categories: []string{"audio", "marketing", "video"},
				Tags:       []string{"Python", "SEO"},
				Unknown:    []string{"python"},
			},
		},
		{
			name:       "unknown deduplicated against own tags case-insensitively",
			categories: []string{"Robotics", "robotics"},
			tags:       []string{"ROBOTICS", "ROBOTICS", ""},
			want: taxonomy.Result{
				Categories: []string{"uncategorized"},
				Tags:       []string{"ROBOTICS"},
				Unknown:    []string{"robotics"},
			},
		},
		{
			name:       "sentinel is not spilled",
			categories: []string{"uncategorized"},
			want: taxonomy.Result{
				Categories: []string{"uncategorized"},
				Tags:       []string{},
				Unknown:    []string{},
			},
		},
		{
			name: "nothing at all",
			want: taxonomy.Result{
				Categories: []string{"uncategorized"},
				Tags:       []string{},
				Unknown:    []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.categories, tt.tags)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeNeverEmpty(t *testing.T) {
	n := taxonomy.NewNormalizer(taxonomy.Default())
	inputs := [][]string{nil, {}, {""}, {" / "}, {"and"}, {"???"}, {"writing", "zzz"}}
	for _, in := range inputs {
		got := n.Normalize(in, in)
		assert.NotEmpty(t, got.Categories)
		assert.NotContains(t, got.Categories, "")
		assert.NotContains(t, got.Tags, "")
	}
}

func TestNormalizeIsStable(t *testing.T) {
	n := taxonomy.NewNormalizer(nil)
	first := n.Normalize([]string{"Copywriting / Quantum Sensing"}, []string{"beta"})
	second := n.Normalize(first.Categories, first.Tags)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Tags, second.Tags)
}
