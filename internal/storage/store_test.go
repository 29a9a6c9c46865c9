package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates an in-memory store with migrations applied.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testCatalog() ([]DocumentRow, []KeywordRow) {
	docs := []DocumentRow{
		{
			ID:           "EFTA00123",
			Summary:      "The applicant filed a trade complaint.",
			Timestamp:    "2021-03-01T00:00:00",
			TimestampRaw: "March 1, 2021",
			Keywords:     []string{"contract", "trade"},
		},
		{
			ID:       "EFTA00456",
			Summary:  "Hearing transcript for the appeal.",
			Keywords: []string{"hearing"},
		},
		{
			ID: "EFTA00789",
		},
	}
	keywords := []KeywordRow{
		{Keyword: "contract", Occurrences: 30, Retained: true, Rank: 1, KeywordMatchCount: 2, ContentMatchCount: 1, TotalFiles: 3},
		{Keyword: "hearing", Occurrences: 26, Retained: true, Rank: 2, TotalFiles: 2},
		{Keyword: "rare", Occurrences: 3},
	}
	return docs, keywords
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestReplaceCatalog(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalDocuments)
	assert.Equal(t, int64(1), stats.DocumentsWithTimestamp)
	assert.Equal(t, int64(3), stats.TotalKeywords)
	assert.Equal(t, int64(2), stats.RetainedKeywords)
	assert.False(t, stats.HasRun)

	require.Len(t, stats.TopKeywords, 2)
	assert.Equal(t, "contract", stats.TopKeywords[0].Keyword)
	assert.Equal(t, int64(3), stats.TopKeywords[0].TotalFiles)
	assert.Equal(t, "hearing", stats.TopKeywords[1].Keyword)
}

func TestReplaceCatalog_ReplacesNotMerges(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))

	// Second run with a smaller corpus wins outright.
	require.NoError(t, store.ReplaceCatalog(ctx,
		[]DocumentRow{{ID: "EFTA00999", Summary: "only document"}},
		[]KeywordRow{{Keyword: "single", Occurrences: 1}},
	))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalDocuments)
	assert.Equal(t, int64(1), stats.TotalKeywords)
	assert.Empty(t, stats.TopKeywords)
}

func TestRecordRun(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	finished := time.Now()
	run := &RunRow{
		StartedAt:              finished.Add(-2 * time.Second),
		FinishedAt:             finished,
		TotalDocuments:         10,
		TotalKeywords:          40,
		RetainedKeywords:       5,
		DocumentsWithTimestamp: 8,
		MinOccurrences:         25,
	}
	require.NoError(t, store.RecordRun(ctx, run))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	require.True(t, stats.HasRun)
	assert.WithinDuration(t, finished, stats.LastRun, 2*time.Second)
}

func TestSearchSummaries_FTS(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))

	results, err := store.SearchSummaries(ctx, SearchQuery{Query: "trade complaint"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "EFTA00123", results[0].DocID)
	assert.Equal(t, "2021-03-01T00:00:00", results[0].Timestamp)

	// Prefix matching.
	results, err = store.SearchSummaries(ctx, SearchQuery{Query: "hear"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "EFTA00456", results[0].DocID)

	results, err = store.SearchSummaries(ctx, SearchQuery{Query: "nonexistentterm"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSummaries_EmptyQueryListsDatedFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))

	results, err := store.SearchSummaries(ctx, SearchQuery{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "EFTA00123", results[0].DocID)
}

func TestSearchSummaries_LimitOffset(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))

	page1, err := store.SearchSummaries(ctx, SearchQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := store.SearchSummaries(ctx, SearchQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"trade"* OR "complaint"*`, ftsQuery("trade complaint"))
	assert.Equal(t, `"solo"*`, ftsQuery("solo"))
	assert.Equal(t, "", ftsQuery("   "))
}

func TestPurgeAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs, keywords := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, docs, keywords))
	require.NoError(t, store.RecordRun(ctx, &RunRow{StartedAt: time.Now(), FinishedAt: time.Now()}))

	require.NoError(t, store.PurgeAll(ctx))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalDocuments)
	assert.Equal(t, int64(0), stats.TotalKeywords)
	assert.False(t, stats.HasRun)

	// Store still usable after purge.
	results, err := store.SearchSummaries(ctx, SearchQuery{Query: "trade"})
	require.NoError(t, err)
	assert.Empty(t, results)
}
