package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/internal/store"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

// openTestStore connects to TEST_DATABASE_URL and empties the catalog.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.EnsureSchema(ctx))
	_, err = s.pool.Exec(ctx, "truncate table tools")
	require.NoError(t, err)
	return s
}

func TestLoadAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	first := []records.Gold{
		{
			Name: "Alpha", URL: records.Ptr("https://alpha.io"), Description: records.Ptr("Writes copy"),
			Tags: []string{"ai"}, Categories: []string{"writing"}, Domain: records.Ptr("alpha.io"),
		},
		{Name: "Offline", Tags: []string{}, Categories: []string{}},
	}
	res, err := s.Load(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Staged)
	assert.Equal(t, int64(2), res.Total)

	second := []records.Gold{
		{Name: "Alpha Renamed", URL: records.Ptr("https://alpha.io"), HasAPI: true, Tags: []string{}, Categories: []string{}},
		{Name: "Offline", HasFree: true, Tags: []string{}, Categories: []string{}},
	}
	res, err = s.Load(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	tools, err := s.Search(ctx, store.SearchParams{Query: "copy"})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	alpha := tools[0]
	assert.Equal(t, "Alpha Renamed", alpha.Name)
	assert.Equal(t, "Writes copy", records.Deref(alpha.Description))
	assert.True(t, alpha.HasAPI)

	got, err := s.Get(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, got.ID)

	_, err = s.Get(ctx, "not-a-uuid")
	assert.True(t, errors.IsNotFound(err))
	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.IsNotFound(err))

	recent, err := s.Search(ctx, store.SearchParams{})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.NotEmpty(t, stats.TopCategories)
}
