package cli

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/runnerr0/caseline/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurge_RequiresAllFlag(t *testing.T) {
	cmd := &PurgeCommand{globals: &GlobalFlags{}, version: "dev"}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestPurge_ForceDeletesEverything(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.ReplaceCatalog(ctx,
		[]storage.DocumentRow{{ID: "EFTA00001", Summary: "s"}},
		[]storage.KeywordRow{{Keyword: "complaint", Occurrences: 1}},
	))
	require.NoError(t, store.Close())

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}, version: "dev"}
	cmd.setDB(db)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Purged all catalog data")

	check, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	stats, err := check.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalDocuments)
	assert.Equal(t, int64(0), stats.TotalKeywords)
}

func TestPurge_JSONOutput(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{JSON: true}, version: "dev"}
	cmd.setDB(db)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, `"purged":true`)
}
