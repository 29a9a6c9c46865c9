package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/caseline/internal/config"
	"github.com/runnerr0/caseline/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version                string             `json:"version"`
	DatabasePath           string             `json:"database_path"`
	DatabaseSizeBytes      int64              `json:"database_size_bytes"`
	TotalDocuments         int64              `json:"total_documents"`
	DocumentsWithTimestamp int64              `json:"documents_with_timestamp"`
	TotalKeywords          int64              `json:"total_keywords"`
	RetainedKeywords       int64              `json:"retained_keywords"`
	LastRun                string             `json:"last_run,omitempty"`
	OutputDir              string             `json:"output_dir"`
	TopKeywords            []keywordCountJSON `json:"top_keywords"`
}

type keywordCountJSON struct {
	Keyword    string `json:"keyword"`
	TotalFiles int64  `json:"total_files"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, db, cfg)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(store *storage.SQLiteStore, db *sql.DB, cfg *config.Config) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	dbSize := getDatabaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, dbPath, dbSize, cfg)
	}
	return c.printStatusHuman(stats, dbPath, dbSize, cfg)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, dbPath string, dbSize int64, cfg *config.Config) error {
	fmt.Println("Caseline Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Documents:     %s\n", formatNumber(stats.TotalDocuments))

	if stats.TotalDocuments > 0 {
		pct := float64(stats.DocumentsWithTimestamp) / float64(stats.TotalDocuments) * 100
		fmt.Printf("With dates:    %s (%.1f%%)\n", formatNumber(stats.DocumentsWithTimestamp), pct)
	} else {
		fmt.Printf("With dates:    %s\n", formatNumber(stats.DocumentsWithTimestamp))
	}

	fmt.Printf("Keywords:      %s (%s retained)\n", formatNumber(stats.TotalKeywords), formatNumber(stats.RetainedKeywords))
	fmt.Printf("Output:        %s\n", cfg.Output.Dir)

	if stats.HasRun {
		fmt.Printf("Last run:      %s\n", stats.LastRun.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Last run:      never")
	}

	if len(stats.TopKeywords) > 0 {
		fmt.Println()
		fmt.Println("Top Keywords:")
		for _, k := range stats.TopKeywords {
			fmt.Printf("  %-30s %s\n", k.Keyword, formatNumber(k.TotalFiles))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, dbPath string, dbSize int64, cfg *config.Config) error {
	out := statusJSON{
		Version:                c.version,
		DatabasePath:           dbPath,
		DatabaseSizeBytes:      dbSize,
		TotalDocuments:         stats.TotalDocuments,
		DocumentsWithTimestamp: stats.DocumentsWithTimestamp,
		TotalKeywords:          stats.TotalKeywords,
		RetainedKeywords:       stats.RetainedKeywords,
		OutputDir:              cfg.Output.Dir,
		TopKeywords:            make([]keywordCountJSON, len(stats.TopKeywords)),
	}

	if stats.HasRun {
		out.LastRun = stats.LastRun.UTC().Format(time.RFC3339)
	}

	for i, k := range stats.TopKeywords {
		out.TopKeywords[i] = keywordCountJSON{Keyword: k.Keyword, TotalFiles: k.TotalFiles}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
		if len(s) > remainder {
			result.WriteString(",")
		}
	}
	for i := remainder; i < len(s); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
