package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader("\ufeffTool Name,Website,,Website\nAlpha,https://a.io,x\nBeta,,,dup\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Tool Name", "Website", "unnamed_2", "Website.1"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, records.String("Alpha"), table.Rows[0].Get("Tool Name"))
	assert.Equal(t, records.String("x"), table.Rows[0].Get("unnamed_2"))
	assert.True(t, table.Rows[0].Get("Website.1").IsNull())
	assert.True(t, table.Rows[1].Get("Website").IsNull())
	assert.Equal(t, records.String("dup"), table.Rows[1].Get("Website.1"))
}

func TestParseEmpty(t *testing.T) {
	table, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestParseQuoted(t *testing.T) {
	table, err := Parse(strings.NewReader("name,tags\n\"Gamma, Inc\",\"a, b\"\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, records.String("Gamma, Inc"), table.Rows[0].Get("name"))
	assert.Equal(t, records.String("a, b"), table.Rows[0].Get("tags"))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	content := "name,url\nAlpha,https://a.io\n"
	path := writeFile(t, dir, "export.csv", content)

	table, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "export", table.ID)
	assert.Equal(t, []string{"name", "url", constants.SourceFileColumn, constants.SourceSHAColumn}, table.Columns)
	want := records.Raw{
		"name":                     records.String("Alpha"),
		"url":                      records.String("https://a.io"),
		constants.SourceFileColumn: records.String("export.csv"),
		constants.SourceSHAColumn:  records.String(SHA16([]byte(content))),
	}
	if diff := cmp.Diff(want, table.Rows[0], cmp.AllowUnexported(records.Value{})); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestSHA16(t *testing.T) {
	sha := SHA16([]byte("hello"))
	assert.Len(t, sha, 16)
	assert.Equal(t, "2cf24dba5fb0a30e", sha)
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "name\nBeta\n")
	writeFile(t, dir, "a.CSV", "name\nAlpha\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, ".hidden.csv", "name\nHidden\n")

	src := New(WithDir(dir))
	assert.Equal(t, "csv", src.ID().String())

	tables, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "a", tables[0].ID)
	assert.Equal(t, "b", tables[1].ID)
}

func TestFetchGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "name\nAlpha\n")
	writeFile(t, dir, "b.tsv.csv", "name\nBeta\n")

	tables, err := New(WithDir(dir), WithGlob("b*")).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "b.tsv", tables[0].ID)
}

func TestFetchNoInput(t *testing.T) {
	_, err := New(WithDir(t.TempDir())).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNoInput(err))

	_, err = New(WithDir(filepath.Join(t.TempDir(), "missing"))).Fetch(context.Background())
	assert.True(t, errors.IsNoInput(err))
}

func TestFetchCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "name\nAlpha\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithDir(dir)).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, filepath.Join("data", "sources"), s.Dir())
	assert.Equal(t, "*.csv", s.Glob())

	s = New(WithDir("/srv/in"), WithGlob(""))
	assert.Equal(t, "/srv/in", s.Dir())
	assert.Equal(t, "*.csv", s.Glob())
}
