package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/runnerr0/caseline/internal/analysis"
	"github.com/runnerr0/caseline/internal/output"
	"github.com/runnerr0/caseline/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EndToEnd(t *testing.T) {
	store, _ := setupTestStore(t)
	cfg := setupTestCorpus(t)

	cmd := &AnalyzeCommand{globals: &GlobalFlags{}, version: "dev"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, cfg))
	})

	assert.Contains(t, out, "Analysis complete")
	assert.Contains(t, out, "Documents:           3")

	// The index ties the output set together.
	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, output.IndexFile))
	require.NoError(t, err)
	var index analysis.Index
	require.NoError(t, json.Unmarshal(data, &index))

	assert.Equal(t, 3, index.Metadata.TotalFiles)
	assert.Equal(t, 2, index.Metadata.FilesWithTimestamps)
	assert.Equal(t, 3, index.Metadata.KeywordsIncluded)
	require.NotEmpty(t, index.TopKeywords)
	assert.Equal(t, "complaint", index.TopKeywords[0].Keyword)
	assert.Equal(t, "keyword_001_complaint.json", index.TopKeywords[0].DataFile)

	// Every advertised data file exists.
	for _, kw := range index.TopKeywords {
		_, err := os.Stat(filepath.Join(cfg.Output.Dir, kw.DataFile))
		assert.NoError(t, err, kw.DataFile)
	}
	_, err = os.Stat(filepath.Join(cfg.Output.Dir, output.YearTimelineFile))
	assert.NoError(t, err)

	// The summary cleaning strips the filler opener before publication.
	rec, err := output.ReadKeywordRecord(filepath.Join(cfg.Output.Dir, "keyword_001_complaint.json"))
	require.NoError(t, err)
	require.Len(t, rec.Timeline, 3)
	for _, e := range rec.Timeline {
		if e.FileID == "EFTA00001" {
			assert.Equal(t, "Complaint about trade barriers.", e.Summary)
		}
	}

	// The catalog was rebuilt alongside the files.
	ctx := context.Background()
	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalDocuments)
	assert.Equal(t, int64(2), stats.DocumentsWithTimestamp)
	assert.Equal(t, int64(3), stats.RetainedKeywords)
	assert.True(t, stats.HasRun)
}

func TestAnalyze_JSONOutput(t *testing.T) {
	store, _ := setupTestStore(t)
	cfg := setupTestCorpus(t)

	cmd := &AnalyzeCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, cfg))
	})

	var result analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.TotalDocuments)
	assert.Equal(t, 3, result.RetainedKeywords)
	assert.Equal(t, 2, result.FilesWithTimestamps)
	assert.Equal(t, cfg.Output.Dir, result.OutputDir)
}

func TestAnalyze_MissingCorpusDir(t *testing.T) {
	store, _ := setupTestStore(t)
	cfg := setupTestCorpus(t)
	cfg.Corpus.OriginalsDir = filepath.Join(t.TempDir(), "missing")

	cmd := &AnalyzeCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}
	err := cmd.executeWithStore(store, cfg)
	assert.Error(t, err)
}

func TestAnalyze_ApplyOverrides(t *testing.T) {
	cfg := setupTestCorpus(t)
	cmd := &AnalyzeCommand{
		OriginalsDir:   "/elsewhere/orig",
		OutputDir:      "/elsewhere/out",
		MinOccurrences: 7,
	}
	cmd.applyOverrides(cfg)

	assert.Equal(t, "/elsewhere/orig", cfg.Corpus.OriginalsDir)
	assert.Equal(t, "/elsewhere/out", cfg.Output.Dir)
	assert.Equal(t, 7, cfg.Keywords.MinOccurrences)
}

func TestBuildCatalog(t *testing.T) {
	store, _ := setupTestStore(t)
	cfg := setupTestCorpus(t)

	cmd := &AnalyzeCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, cfg))
	})

	ctx := context.Background()
	results, err := store.SearchSummaries(ctx, storage.SearchQuery{Query: "barriers"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "EFTA00001", results[0].DocID)
	assert.Equal(t, "2021-03-05T00:00:00", results[0].Timestamp)
}
