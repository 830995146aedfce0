package artifacts_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/internal/artifacts"
	pkgerrors "github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

func TestStorePaths(t *testing.T) {
	s := artifacts.New("/data")
	assert.Equal(t, "/data", s.Root())
	assert.Equal(t, filepath.Join("/data", "silver"), s.Dir("silver"))
	assert.Equal(t, filepath.Join("/data", "bronze", "eudk.parquet"), s.TablePath("bronze", "eudk"))
	assert.Equal(t, "data", artifacts.New("").Root())
	assert.Equal(t, "tools_2024", artifacts.TableID("/x/bronze/tools_2024.parquet"))
}

func TestList(t *testing.T) {
	root := t.TempDir()
	s := artifacts.New(root)

	files, err := s.List("bronze")
	require.NoError(t, err)
	assert.Empty(t, files)

	dir := s.Dir("bronze")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.parquet"), 0o755))
	for _, name := range []string{"b.parquet", "a.parquet", "notes.txt", ".hidden.parquet"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err = s.List("bronze")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.parquet"), filepath.Join(dir, "b.parquet")}, files)

	_, err = artifacts.Glob(dir, "[")
	assert.Error(t, err)
}

func TestPrune(t *testing.T) {
	s := artifacts.New(t.TempDir())

	removed, err := s.Prune("silver", nil)
	require.NoError(t, err)
	assert.Empty(t, removed)

	dir := s.Dir("silver")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{"old.parquet", "tools.parquet", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	removed, err = s.Prune("silver", []string{s.TablePath("silver", "tools")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "old.parquet")}, removed)
	assert.NoFileExists(t, filepath.Join(dir, "old.parquet"))
	assert.FileExists(t, filepath.Join(dir, "tools.parquet"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "file.txt")

	require.NoError(t, artifacts.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("v1"))
		return err
	}))

	err := artifacts.WriteAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("boom")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data), "failed write leaves prior output untouched")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bronze", "tools_2024.parquet")
	in := records.Table{
		ID:      "ignored",
		Columns: []string{"Name", "Tags", "Notes", "__source_sha"},
		Rows: []records.Raw{
			{"Name": records.String("Jasper"), "Tags": records.List("a", "b"), "__source_sha": records.String("abc")},
			{"Name": records.String(""), "Notes": records.String("n")},
		},
	}
	require.NoError(t, artifacts.WriteTable(path, in))

	out, err := artifacts.ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "tools_2024", out.ID)
	assert.Equal(t, in.Columns, out.Columns)
	require.Len(t, out.Rows, 2)

	assert.Equal(t, "Jasper", out.Rows[0].Get("Name").Text())
	items, ok := out.Rows[0].Get("Tags").Items()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.True(t, out.Rows[0].Get("Notes").IsNull())

	s, ok := out.Rows[1].Get("Name").Str()
	require.True(t, ok, "empty strings stay strings")
	assert.Equal(t, "", s)
	assert.True(t, out.Rows[1].Get("Tags").IsNull())
}

func TestSilverAndGoldRoundTrip(t *testing.T) {
	dir := t.TempDir()

	silver := []records.Silver{
		{Name: "A", URL: records.Ptr("https://a.io"), Description: "d", Tags: []string{"x"}, Categories: []string{"code"}, HasAPI: true, Domain: records.Ptr("a.io"), Source: "s"},
		{Name: "B", Tags: []string{}, Categories: []string{"uncategorized"}, Source: "s"},
	}
	silverPath := filepath.Join(dir, "silver", "s.parquet")
	require.NoError(t, artifacts.WriteSilver(silverPath, silver))
	gotSilver, err := artifacts.ReadSilver(silverPath)
	require.NoError(t, err)
	if diff := cmp.Diff(silver, gotSilver, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("silver mismatch (-want +got):\n%s", diff)
	}

	gold := []records.Gold{
		{Name: "A", URL: records.Ptr("https://a.io"), Description: records.Ptr("d"), Tags: []string{"x"}, Categories: []string{"code"}, HasFree: true},
		{Name: "B", Categories: []string{"uncategorized"}},
	}
	goldPath := filepath.Join(dir, "gold", "tools.parquet")
	require.NoError(t, artifacts.WriteGold(goldPath, gold))
	gotGold, err := artifacts.ReadGold(goldPath)
	require.NoError(t, err)
	if diff := cmp.Diff(gold, gotGold, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("gold mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := artifacts.ReadGold(filepath.Join(t.TempDir(), "tools.parquet"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	var v map[string]any
	err = artifacts.ReadYAML(filepath.Join(t.TempDir(), "x.yaml"), &v)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestYAMLRoundTrip(t *testing.T) {
	type doc struct {
		Stage string   `yaml:"stage"`
		Files []string `yaml:"files"`
	}
	path := filepath.Join(t.TempDir(), "gold", "manifest.yaml")
	require.NoError(t, artifacts.WriteYAML(path, doc{Stage: "gold", Files: []string{"a", "b"}}))

	var got doc
	require.NoError(t, artifacts.ReadYAML(path, &got))
	assert.Equal(t, doc{Stage: "gold", Files: []string{"a", "b"}}, got)
}
