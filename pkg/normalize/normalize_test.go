package normalize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/mapper"
	"github.com/agentstation/toolmap/pkg/normalize"
	"github.com/agentstation/toolmap/pkg/records"
	"github.com/agentstation/toolmap/pkg/taxonomy"
)

func TestTable(t *testing.T) {
	table := records.Table{
		ID:      "tools_2024",
		Columns: []string{"Tool Name", "Website", "About", "Keywords", "Category", "API?", "Free", "__source_file"},
		Rows: []records.Raw{
			{
				"Tool Name":     records.String(" Jasper "),
				"Website":       records.String("http://www.Jasper.ai/?ref=x"),
				"About":         records.String(" AI copy "),
				"Keywords":      records.String("marketing, gpt"),
				"Category":      records.String("AI Writing"),
				"API?":          records.String("Yes"),
				"Free":          records.String("0"),
				"__source_file": records.String("tools_2024.csv"),
			},
			{
				"Tool Name": records.String("   "),
				"Website":   records.String("https://ghost.example"),
			},
			{
				"Tool Name": records.String("Orbit"),
				"Category":  records.String("quantum-sensing"),
			},
		},
	}

	res := normalize.New().Table(table)

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Records, 2)

	want := []records.Silver{
		{
			Name:        "Jasper",
			URL:         records.Ptr("https://www.jasper.ai"),
			Description: "AI copy",
			Tags:        []string{"gpt", "marketing"},
			Categories:  []string{"marketing", "writing"},
			HasAPI:      true,
			HasFree:     false,
			Domain:      records.Ptr("jasper.ai"),
			Source:      "tools_2024",
		},
		{
			Name:        "Orbit",
			Description: "",
			Tags:        []string{"quantum-sensing"},
			Categories:  []string{"uncategorized"},
			Source:      "tools_2024",
		},
	}
	if diff := cmp.Diff(want, res.Records); diff != "" {
		t.Errorf("Table() mismatch (-want +got):\n%s", diff)
	}

	col, ok := res.Resolution.Column(mapper.FieldHasAPI)
	require.True(t, ok)
	assert.Equal(t, "API?", col)
}

func TestRecordDefaults(t *testing.T) {
	n := normalize.New()
	rec, ok := n.Record(records.Raw{"title": records.String("Solo")}, mapper.Resolution{mapper.FieldName: "title"}, "src")
	require.True(t, ok)

	assert.Equal(t, "Solo", rec.Name)
	assert.Nil(t, rec.URL)
	assert.Nil(t, rec.Domain)
	assert.Equal(t, "", rec.Description)
	assert.Equal(t, []string{}, rec.Tags)
	assert.Equal(t, []string{"uncategorized"}, rec.Categories)
	assert.False(t, rec.HasAPI)
	assert.False(t, rec.HasFree)
}

func TestRecordMissingName(t *testing.T) {
	n := normalize.New()
	_, ok := n.Record(records.Raw{"url": records.String("https://x.io")}, mapper.Resolve([]string{"url"}, mapper.DefaultAliases()), "src")
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	aliases, err := mapper.NewAliasTable(map[mapper.Field][]string{mapper.FieldName: {"product"}})
	require.NoError(t, err)
	tx, err := taxonomy.New(map[string][]string{"robotics": {"drones"}})
	require.NoError(t, err)

	n := normalize.New(normalize.WithAliases(aliases), normalize.WithTaxonomy(tx))
	res := n.Table(records.Table{
		ID:      "custom",
		Columns: []string{"Product", "Name", "Section"},
		Rows: []records.Raw{{
			"Product": records.String("SkyCam"),
			"Name":    records.String("ignored"),
			"Section": records.String("Drones"),
		}},
	})

	require.Len(t, res.Records, 1)
	assert.Equal(t, "SkyCam", res.Records[0].Name)
	assert.Equal(t, []string{"uncategorized"}, res.Records[0].Categories)
	assert.Equal(t, []string{}, res.Records[0].Tags)
}
