package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/runnerr0/caseline/internal/analysis"
	"github.com/runnerr0/caseline/internal/config"
	"github.com/runnerr0/caseline/internal/corpus"
	"github.com/runnerr0/caseline/internal/output"
	"github.com/runnerr0/caseline/internal/storage"
)

// analyzeJSON is the JSON output structure for the analyze command.
type analyzeJSON struct {
	TotalDocuments      int    `json:"total_documents"`
	TotalKeywords       int    `json:"total_keywords"`
	RetainedKeywords    int    `json:"retained_keywords"`
	FilesWithTimestamps int    `json:"files_with_timestamps"`
	OutputDir           string `json:"output_dir"`
	DurationMS          int64  `json:"duration_ms"`
}

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, cfg)
}

// applyOverrides folds command-line overrides into the loaded config.
func (c *AnalyzeCommand) applyOverrides(cfg *config.Config) {
	if c.OriginalsDir != "" {
		cfg.Corpus.OriginalsDir = c.OriginalsDir
	}
	if c.SummariesDir != "" {
		cfg.Corpus.SummariesDir = c.SummariesDir
	}
	if c.OutputDir != "" {
		cfg.Output.Dir = c.OutputDir
	}
	if c.MinOccurrences > 0 {
		cfg.Keywords.MinOccurrences = c.MinOccurrences
	}
}

// executeWithStore runs the analysis against a provided store (for testing).
func (c *AnalyzeCommand) executeWithStore(store *storage.SQLiteStore, cfg *config.Config) error {
	started := time.Now()
	quiet := c.globals != nil && c.globals.JSON
	verbose := c.globals != nil && c.globals.Verbose

	idPattern, err := cfg.IDRegexp()
	if err != nil {
		return err
	}
	cutoff, err := cfg.CutoffTime()
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Scanning %s...\n", cfg.Corpus.OriginalsDir)
	}
	crp, err := corpus.Load(cfg.Corpus.OriginalsDir, cfg.Corpus.SummariesDir, idPattern)
	if err != nil {
		return err
	}
	if verbose && !quiet {
		fmt.Printf("  loaded %d documents\n", len(crp.Documents))
	}

	opts := analysis.Options{
		MinOccurrences:      cfg.Keywords.MinOccurrences,
		MinKeywordLength:    cfg.Keywords.MinLength,
		BlacklistSubstrings: cfg.Keywords.BlacklistSubstrings,
		ExcludeYears:        cfg.Keywords.ExcludeYears,
		SkipHeaderLines:     cfg.Corpus.SkipHeaderLines,
		MinYear:             cfg.Timeline.MinYear,
		Cutoff:              cutoff,
	}

	if !quiet {
		fmt.Println("Extracting dates and building timelines...")
	}
	res := analysis.Run(crp, opts)

	index := analysis.BuildIndex(res, opts, time.Now(), output.KeywordFileName)

	if !quiet {
		fmt.Printf("Writing %d keyword files to %s/...\n", len(res.Keywords), cfg.Output.Dir)
	}
	if err := output.WriteAnalysis(cfg.Output.Dir, res, index); err != nil {
		return err
	}

	docs, keywords := buildCatalog(crp, res, opts)
	ctx := context.Background()
	if err := store.ReplaceCatalog(ctx, docs, keywords); err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}

	run := &storage.RunRow{
		StartedAt:              started,
		FinishedAt:             time.Now(),
		TotalDocuments:         res.TotalFiles,
		TotalKeywords:          res.TotalKeywords,
		RetainedKeywords:       len(res.Keywords),
		DocumentsWithTimestamp: res.FilesWithTimestamps,
		MinOccurrences:         opts.MinOccurrences,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		return err
	}

	if quiet {
		out := analyzeJSON{
			TotalDocuments:      res.TotalFiles,
			TotalKeywords:       res.TotalKeywords,
			RetainedKeywords:    len(res.Keywords),
			FilesWithTimestamps: res.FilesWithTimestamps,
			OutputDir:           cfg.Output.Dir,
			DurationMS:          time.Since(started).Milliseconds(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println()
	fmt.Println("Analysis complete")
	fmt.Printf("  Documents:           %d\n", res.TotalFiles)
	fmt.Printf("  Distinct keywords:   %d\n", res.TotalKeywords)
	fmt.Printf("  Keywords retained:   %d\n", len(res.Keywords))
	fmt.Printf("  With timestamps:     %d\n", res.FilesWithTimestamps)
	fmt.Printf("  Output directory:    %s\n", cfg.Output.Dir)
	return nil
}

// buildCatalog converts a run's corpus and result into catalog rows. Keyword
// rows are emitted in a deterministic order so repeated runs over the same
// corpus produce identical databases.
func buildCatalog(crp *corpus.Corpus, res *analysis.Result, opts analysis.Options) ([]storage.DocumentRow, []storage.KeywordRow) {
	docs := make([]storage.DocumentRow, 0, len(crp.Documents))
	for _, doc := range crp.Documents {
		row := storage.DocumentRow{
			ID:       doc.ID,
			Summary:  analysis.DisplaySummary(doc),
			Keywords: doc.Keywords,
		}
		if when, raw, ok := analysis.SelectCanonical(doc, opts.MinYear, opts.Cutoff); ok {
			row.Timestamp = when.Format(analysis.TimestampLayout)
			row.TimestampRaw = raw
		}
		docs = append(docs, row)
	}

	retained := make(map[string]*storage.KeywordRow, len(res.Keywords))
	for i, rec := range res.Keywords {
		retained[rec.Keyword] = &storage.KeywordRow{
			Keyword:           rec.Keyword,
			Occurrences:       rec.Count,
			Retained:          true,
			Rank:              i + 1,
			KeywordMatchCount: rec.KeywordMatchCount,
			ContentMatchCount: rec.ContentMatchCount,
			TotalFiles:        rec.TotalFiles,
		}
	}

	all := make([]string, 0, len(res.KeywordCounts))
	for kw := range res.KeywordCounts {
		all = append(all, kw)
	}
	sort.Strings(all)

	keywords := make([]storage.KeywordRow, 0, len(all))
	for _, kw := range all {
		if row := retained[kw]; row != nil {
			keywords = append(keywords, *row)
			continue
		}
		keywords = append(keywords, storage.KeywordRow{
			Keyword:     kw,
			Occurrences: res.KeywordCounts[kw],
		})
	}
	return docs, keywords
}
