package mapper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/mapper"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    mapper.Resolution
	}{
		{
			name:    "exact case-insensitive",
			columns: []string{"Tool", "Website", "Summary", "Keywords", "Section", "API", "Freemium"},
			want: mapper.Resolution{
				mapper.FieldName:        "Tool",
				mapper.FieldURL:         "Website",
				mapper.FieldDescription: "Summary",
				mapper.FieldTags:        "Keywords",
				mapper.FieldCategories:  "Section",
				mapper.FieldHasAPI:      "API",
				mapper.FieldHasFree:     "Freemium",
			},
		},
		{
			name:    "first alias in list order wins",
			columns: []string{"title", "name"},
			want: mapper.Resolution{
				mapper.FieldName: "name",
			},
		},
		{
			name:    "substring fallback",
			columns: []string{"Product Title", "Homepage URL", "Short description"},
			want: mapper.Resolution{
				mapper.FieldName:        "Product Title",
				mapper.FieldURL:         "Homepage URL",
				mapper.FieldDescription: "Short description",
			},
		},
		{
			name:    "substring tries aliases before columns",
			columns: []string{"main link", "site url"},
			want: mapper.Resolution{
				mapper.FieldURL: "site url",
			},
		},
		{
			name:    "metadata columns are never candidates",
			columns: []string{"__source_file", "__source_sha", "label"},
			want:    mapper.Resolution{},
		},
		{
			name:    "no columns",
			columns: nil,
			want:    mapper.Resolution{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapper.Resolve(tt.columns, mapper.DefaultAliases())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDuplicateCaseColumns(t *testing.T) {
	got := mapper.Resolve([]string{"Name", "NAME"}, mapper.DefaultAliases())
	col, ok := got.Column(mapper.FieldName)
	require.True(t, ok)
	assert.Equal(t, "Name", col)

	_, ok = got.Column(mapper.FieldURL)
	assert.False(t, ok)
}

func TestAliasTable(t *testing.T) {
	t.Run("aliases are lowercased and trimmed", func(t *testing.T) {
		table, err := mapper.NewAliasTable(map[mapper.Field][]string{
			mapper.FieldName: {" Product ", "", "NAME"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"product", "name"}, table.Aliases(mapper.FieldName))
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := mapper.NewAliasTable(map[mapper.Field][]string{"price": {"cost"}})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("Aliases returns a copy", func(t *testing.T) {
		table := mapper.DefaultAliases()
		got := table.Aliases(mapper.FieldURL)
		got[0] = "changed"
		assert.Equal(t, "url", table.Aliases(mapper.FieldURL)[0])
	})
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name:\n  - product\n  - app\n"), 0o644))

	table, err := mapper.LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "app"}, table.Aliases(mapper.FieldName))
	assert.Equal(t, mapper.DefaultAliases().Aliases(mapper.FieldURL), table.Aliases(mapper.FieldURL))

	_, err = mapper.LoadAliases(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
