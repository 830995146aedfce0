package load

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/store"
	"github.com/agentstation/toolmap/internal/store/postgres"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

type fakeDB struct {
	loaded []records.Gold
	closed bool
}

func (f *fakeDB) Ping(context.Context) error { return nil }

func (f *fakeDB) Search(context.Context, store.SearchParams) ([]store.Tool, error) {
	return nil, nil
}

func (f *fakeDB) Get(context.Context, string) (*store.Tool, error) {
	return nil, errors.ErrNotFound
}

func (f *fakeDB) Stats(context.Context) (*store.Stats, error) { return &store.Stats{}, nil }

func (f *fakeDB) Load(_ context.Context, tools []records.Gold) (*postgres.LoadResult, error) {
	f.loaded = tools
	n := int64(len(tools))
	return &postgres.LoadResult{Staged: n, Upserted: n, Total: n}, nil
}

func (f *fakeDB) Close() { f.closed = true }

func TestLoad(t *testing.T) {
	dataDir := t.TempDir()
	gold := []records.Gold{
		{Name: "Jasper", URL: records.Ptr("https://www.jasper.ai")},
		{Name: "Sketchy"},
	}
	path := artifacts.New(dataDir).Path(constants.StageGold, constants.GoldToolsFile)
	require.NoError(t, artifacts.WriteGold(path, gold))

	db := &fakeDB{}
	app := &application.Mock{
		DataDirFunc:      func() string { return dataDir },
		OutputFormatFunc: func() string { return "json" },
		DatabaseFunc:     func(context.Context) (application.Database, error) { return db, nil },
	}

	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.True(t, db.closed)
	require.Len(t, db.loaded, 2)
	assert.Equal(t, "Jasper", db.loaded[0].Name)

	var result postgres.LoadResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, int64(2), result.Staged)
	assert.Equal(t, int64(2), result.Total)
}

func TestLoadMissingGold(t *testing.T) {
	app := &application.Mock{DataDirFunc: func() string { return t.TempDir() }}

	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadWithoutDatabase(t *testing.T) {
	dataDir := t.TempDir()
	path := artifacts.New(dataDir).Path(constants.StageGold, constants.GoldToolsFile)
	require.NoError(t, artifacts.WriteGold(path, []records.Gold{{Name: "Jasper"}}))

	app := &application.Mock{DataDirFunc: func() string { return dataDir }}
	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
