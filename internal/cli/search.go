package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/caseline/internal/storage"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
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

	return c.executeWithStore(store, args)
}

// executeWithStore runs the search against a provided store (for testing).
func (c *SearchCommand) executeWithStore(store *storage.SQLiteStore, args []string) error {
	query := strings.Join(args, " ")

	sq := storage.SearchQuery{
		Query:  query,
		Limit:  c.Limit,
		Offset: c.Offset,
	}

	ctx := context.Background()
	results, err := store.SearchSummaries(ctx, sq)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(query, results)
	}
	return c.printHuman(query, results)
}

func (c *SearchCommand) printHuman(query string, results []storage.SearchResult) error {
	if len(results) == 0 {
		if query != "" {
			fmt.Printf("No results found for %q\n", query)
		} else {
			fmt.Println("No documents in catalog (run analyze first)")
		}
		return nil
	}

	resultWord := "results"
	if len(results) == 1 {
		resultWord = "result"
	}
	if query != "" {
		fmt.Printf("Found %d %s for %q\n\n", len(results), resultWord, query)
	} else {
		fmt.Printf("Found %d %s\n\n", len(results), resultWord)
	}

	for i, r := range results {
		fmt.Printf("%d. %s", i+1+c.Offset, r.DocID)
		if r.Timestamp != "" {
			fmt.Printf(" (%s)", r.Timestamp[:10])
		}
		fmt.Println()
		fmt.Printf("   %s\n", truncate(r.Summary, 200))

		if i < len(results)-1 {
			fmt.Println()
		}
	}

	return nil
}

type jsonSearchResult struct {
	FileID    string `json:"file_id"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp,omitempty"`
}

type jsonSearchOutput struct {
	Count   int                `json:"count"`
	Query   string             `json:"query"`
	Results []jsonSearchResult `json:"results"`
}

func (c *SearchCommand) printJSON(query string, results []storage.SearchResult) error {
	out := jsonSearchOutput{
		Count:   len(results),
		Query:   query,
		Results: make([]jsonSearchResult, len(results)),
	}

	for i, r := range results {
		out.Results[i] = jsonSearchResult{
			FileID:    r.DocID,
			Summary:   r.Summary,
			Timestamp: r.Timestamp,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// truncate cuts s at the last space before max, appending an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
