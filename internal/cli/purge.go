package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/caseline/internal/storage"
)

// setDB allows tests to inject a database connection.
func (c *PurgeCommand) setDB(db *sql.DB) {
	c.db = db
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL catalog data.")
		fmt.Println("  - All document records")
		fmt.Println("  - All keyword statistics")
		fmt.Println("  - All run history")
		fmt.Println()
		fmt.Println("This action cannot be undone. Files in the output directory are kept.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	// Open or use injected DB
	db := c.db
	if db == nil {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		store, opened, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer opened.Close()
		defer store.Close()
		return c.purge(store)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()
	return c.purge(store)
}

func (c *PurgeCommand) purge(store *storage.SQLiteStore) error {
	ctx := context.Background()
	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"purged":  true,
			"message": "all catalog data deleted",
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Println("Purged all catalog data. Caseline is empty.")
	return nil
}
