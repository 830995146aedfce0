package provenance_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/provenance"
)

func TestTracker(t *testing.T) {
	t.Run("disabled tracker records nothing", func(t *testing.T) {
		tr := provenance.NewTracker(false)
		tr.Track("k", provenance.Provenance{Field: "name", Source: "a"})
		tr.TrackSources("k", []string{"a"})

		assert.Nil(t, tr.Map())
		_, ok := tr.FindByRecord("k")
		assert.False(t, ok)
	})

	t.Run("tracks fields and sources", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.TrackSources("https://a.io", []string{"eudk", "csv_b"})
		tr.TrackSources("https://a.io", []string{"csv_b", "csv_a"})
		tr.Track("https://a.io", provenance.Provenance{Field: "name", Source: "eudk", Value: "Alpha", Policy: "longest"})

		p, ok := tr.FindByField("https://a.io", "name")
		require.True(t, ok)
		assert.Equal(t, "eudk", p.Source)
		assert.False(t, p.Timestamp.IsZero())

		rec, ok := tr.FindByRecord("https://a.io")
		require.True(t, ok)
		assert.Equal(t, []string{"csv_a", "csv_b", "eudk"}, rec.Sources)

		_, ok = tr.FindByField("https://a.io", "url")
		assert.False(t, ok)
	})

	t.Run("Map is a copy", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.TrackSources("k", []string{"a"})
		m := tr.Map()
		m["k"].Sources[0] = "changed"

		rec, _ := tr.FindByRecord("k")
		assert.Equal(t, []string{"a"}, rec.Sources)
	})

	t.Run("Clear", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.TrackSources("k", []string{"a"})
		tr.Clear()
		assert.Empty(t, tr.Map())
	})
}

func TestFileRoundTrip(t *testing.T) {
	tr := provenance.NewTracker(true)
	tr.TrackSources("b", []string{"s2"})
	tr.TrackSources("a", []string{"s1"})
	tr.Track("a", provenance.Provenance{Field: "url", Source: "s1", Value: "https://a.io", Policy: "first"})

	f := provenance.NewFile(tr.Map())
	require.Len(t, f.Records, 2)
	assert.Equal(t, "a", f.Records[0].Key)

	data, err := f.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "provenance.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := provenance.Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	m := loaded.Map()
	require.Contains(t, m, "a")
	assert.Equal(t, []string{"s1"}, m["a"].Sources)
	assert.Equal(t, "s1", m["a"].Fields["url"].Source)
}

func TestLoadMissing(t *testing.T) {
	f, err := provenance.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Nil(t, f)
}
