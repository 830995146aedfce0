package inspect

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/differ"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/records"
)

func TestFilterGold(t *testing.T) {
	tools := []records.Gold{
		{Name: "Jasper", Categories: []string{"marketing", "writing"}},
		{Name: "Sketchy", Categories: []string{"image"}},
		{Name: "Copy.ai", Categories: []string{"writing"}},
	}

	assert.Len(t, filterGold(tools, "", 0), 3)
	assert.Len(t, filterGold(tools, "Writing", 0), 2)
	got := filterGold(tools, "writing", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Jasper", got[0].Name)
}

func TestProvenanceTable(t *testing.T) {
	data := provenanceTable([]provenance.Record{{
		Key: "https://www.jasper.ai",
		Fields: map[string]provenance.Provenance{
			"url":  {Source: "tools", Policy: "first"},
			"name": {Source: "eudk", Policy: "most_common"},
		},
	}})
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"https://www.jasper.ai", "name", "eudk", "most_common"}, data.Rows[0])
	assert.Equal(t, "url", data.Rows[1][1])
}

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{
		DataDirFunc:      func() string { return dataDir },
		OutputFormatFunc: func() string { return "table" },
	}
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspectBronze(t *testing.T) {
	dataDir := t.TempDir()
	table := records.Table{
		ID:      "tools",
		Columns: []string{"Tool Name", "Website"},
		Rows: []records.Raw{
			{"Tool Name": records.String("Jasper"), "Website": records.String("jasper.ai")},
			{"Tool Name": records.String("Sketchy"), "Website": records.Null()},
		},
	}
	require.NoError(t, artifacts.WriteTable(artifacts.New(dataDir).TablePath(constants.StageBronze, "tools"), table))

	out, err := run(t, dataDir, "bronze", "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Jasper")
	assert.Contains(t, out, "Sketchy")
}

func TestInspectSilverNoInput(t *testing.T) {
	_, err := run(t, t.TempDir(), "silver")
	require.Error(t, err)
	assert.True(t, errors.IsNoInput(err))
}

func TestInspectGoldMissing(t *testing.T) {
	_, err := run(t, t.TempDir(), "gold")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestInspectManifestMissing(t *testing.T) {
	_, err := run(t, t.TempDir(), "manifest")
	assert.True(t, errors.IsNotFound(err))
}

func TestChangesTable(t *testing.T) {
	old := records.Gold{Name: "Jasper", URL: records.Ptr("https://www.jasper.ai")}
	updated := old
	updated.HasAPI = true
	cs := differ.New().Tools(
		[]records.Gold{old, {Name: "Gone"}},
		[]records.Gold{updated, {Name: "Copy.ai", URL: records.Ptr("https://www.copy.ai")}},
	)

	data := changesTable(cs)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"add", "Copy.ai", "https://www.copy.ai", "-"}, data.Rows[0])
	assert.Equal(t, []string{"update", "Jasper", "https://www.jasper.ai", "has_api"}, data.Rows[1])
	assert.Equal(t, []string{"remove", "Gone", "|Gone", "-"}, data.Rows[2])
}
