package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/caseline/internal/analysis"
	"github.com/runnerr0/caseline/internal/config"
	"github.com/runnerr0/caseline/internal/output"
	"github.com/runnerr0/caseline/internal/relate"
)

// Execute implements the go-flags Commander interface for RelateCommand.
func (c *RelateCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	return c.run(cfg)
}

// applyOverrides folds command-line overrides into the loaded config.
func (c *RelateCommand) applyOverrides(cfg *config.Config) {
	if c.OutputDir != "" {
		cfg.Output.Dir = c.OutputDir
	}
	if c.Threshold > 0 {
		cfg.Relationships.Threshold = c.Threshold
	}
	if c.MaxNeighbors > 0 {
		cfg.Relationships.MaxNeighbors = c.MaxNeighbors
	}
}

// run reads every keyword file in the output directory, annotates its
// timeline with relationship links, and writes it back in place.
func (c *RelateCommand) run(cfg *config.Config) error {
	quiet := c.globals != nil && c.globals.JSON
	verbose := c.globals != nil && c.globals.Verbose
	threshold := cfg.Relationships.Threshold
	maxNeighbors := cfg.Relationships.MaxNeighbors

	paths, err := output.ListKeywordFiles(cfg.Output.Dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no keyword files found in %s (run analyze first)", cfg.Output.Dir)
	}

	if !quiet {
		fmt.Printf("Annotating %d keyword files in %s/...\n", len(paths), cfg.Output.Dir)
	}

	records := make([]*analysis.KeywordRecord, 0, len(paths))
	for _, path := range paths {
		rec, err := output.ReadKeywordRecord(path)
		if err != nil {
			return err
		}
		relate.Annotate(rec, threshold, maxNeighbors)
		if err := output.WriteJSON(path, rec); err != nil {
			return err
		}
		records = append(records, rec)
		if verbose && !quiet {
			fmt.Printf("  %s: %d entries\n", filepath.Base(path), len(rec.Timeline))
		}
	}

	stats := relate.ComputeStats(records)
	statsPath := filepath.Join(cfg.Output.Dir, output.RelationStatsFile)
	if err := output.WriteJSON(statsPath, stats); err != nil {
		return err
	}

	if quiet {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Println()
	fmt.Println("Relationship analysis complete")
	fmt.Printf("  Timeline entries:    %d\n", stats.TotalDocuments)
	fmt.Printf("  With previous links: %d\n", stats.DocumentsWithPrevious)
	fmt.Printf("  With next links:     %d\n", stats.DocumentsWithNext)
	fmt.Printf("  Avg links per entry: %.2f\n", stats.AvgRelationshipsPerDoc)
	return nil
}
