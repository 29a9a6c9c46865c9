package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/runnerr0/caseline/internal/config"
	"github.com/runnerr0/caseline/internal/storage"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// setupTestStore creates an in-memory store for command tests.
func setupTestStore(t *testing.T) (*storage.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, db
}

// setupTestCorpus writes a small corpus and returns a config pointing at it.
func setupTestCorpus(t *testing.T) *config.Config {
	t.Helper()
	originals := t.TempDir()
	summaries := t.TempDir()

	files := map[string]string{
		"EFTA00001_output.txt": "Decision issued March 5, 2021 concerning the complaint.",
		"EFTA00002_output.txt": "Order of 06/10/2022 in the same matter.",
		"EFTA00003_output.txt": "Undated procedural note.",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(originals, name), []byte(content), 0644))
	}

	sums := map[string]string{
		"EFTA00001_output_summary.txt":  "Here's a summary of the document. Complaint about trade barriers.\n",
		"EFTA00001_output_keywords.txt": "trade barriers, complaint\n",
		"EFTA00002_output_summary.txt":  "Follow-up order on the complaint.\n",
		"EFTA00002_output_keywords.txt": "complaint, order\n",
		"EFTA00003_output_keywords.txt": "complaint\n",
	}
	for name, content := range sums {
		require.NoError(t, os.WriteFile(filepath.Join(summaries, name), []byte(content), 0644))
	}

	cfg := config.DefaultConfig()
	cfg.Corpus.OriginalsDir = originals
	cfg.Corpus.SummariesDir = summaries
	cfg.Corpus.SkipHeaderLines = 0
	cfg.Keywords.MinOccurrences = 1
	cfg.Output.Dir = filepath.Join(t.TempDir(), "data")
	return cfg
}
