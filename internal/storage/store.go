package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Store defines the interface for catalog operations.
type Store interface {
	ReplaceCatalog(ctx context.Context, docs []DocumentRow, keywords []KeywordRow) error
	RecordRun(ctx context.Context, run *RunRow) error
	SearchSummaries(ctx context.Context, q SearchQuery) ([]SearchResult, error)
	GetStats(ctx context.Context) (*Stats, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.initFTS(); err != nil {
		return nil, fmt.Errorf("init FTS: %w", err)
	}

	return s, nil
}

// initFTS creates the FTS5 virtual table for summary search if it doesn't
// exist.
func (s *SQLiteStore) initFTS() error {
	_, err := s.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS summaries_fts USING fts5(
			doc_id UNINDEXED,
			summary,
			tokenize='unicode61'
		)
	`)
	return err
}

// ftsQuery converts a user search string into a valid FTS5 query.
// Each word becomes a quoted prefix token joined with OR.
func ftsQuery(input string) string {
	words := strings.Fields(input)
	if len(words) == 0 {
		return ""
	}
	var parts []string
	for _, w := range words {
		parts = append(parts, `"`+w+`"*`)
	}
	return strings.Join(parts, " OR ")
}

// ReplaceCatalog atomically replaces the whole catalog with the rows from
// the latest analysis run. The catalog is rebuilt from scratch every run;
// nothing is merged.
func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, docs []DocumentRow, keywords []KeywordRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{
		"DELETE FROM doc_keywords",
		"DELETE FROM documents",
		"DELETE FROM keywords",
		"DELETE FROM summaries_fts",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog (%s): %w", stmt, err)
		}
	}

	for _, d := range docs {
		var ts, tsRaw any
		if d.Timestamp != "" {
			ts = d.Timestamp
			tsRaw = d.TimestampRaw
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, summary, ts, ts_raw) VALUES (?, ?, ?, ?)",
			d.ID, d.Summary, ts, tsRaw,
		); err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
		for pos, kw := range d.Keywords {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO doc_keywords (doc_id, keyword, pos) VALUES (?, ?, ?)",
				d.ID, kw, pos,
			); err != nil {
				return fmt.Errorf("insert doc keyword: %w", err)
			}
		}
		if d.Summary != "" {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO summaries_fts (doc_id, summary) VALUES (?, ?)",
				d.ID, d.Summary,
			); err != nil {
				return fmt.Errorf("insert FTS: %w", err)
			}
		}
	}

	for _, k := range keywords {
		var rank any
		if k.Retained {
			rank = k.Rank
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO keywords (keyword, occurrences, retained, rank,
			                       keyword_match_count, content_match_count, total_files)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			k.Keyword, k.Occurrences, k.Retained, rank,
			k.KeywordMatchCount, k.ContentMatchCount, k.TotalFiles,
		); err != nil {
			return fmt.Errorf("insert keyword %q: %w", k.Keyword, err)
		}
	}

	return tx.Commit()
}

// RecordRun appends one completed analysis run.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *RunRow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, total_documents, total_keywords,
		                   retained_keywords, documents_with_timestamp, min_occurrences)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.TotalDocuments, run.TotalKeywords, run.RetainedKeywords,
		run.DocumentsWithTimestamp, run.MinOccurrences,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// SearchSummaries queries document summaries. A non-empty query uses the FTS5
// index; otherwise documents are listed newest-first with undated documents
// last.
func (s *SQLiteStore) SearchSummaries(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var rows *sql.Rows
	var err error
	if q.Query != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT d.id, d.summary, COALESCE(d.ts, '')
			FROM summaries_fts f
			JOIN documents d ON d.id = f.doc_id
			WHERE summaries_fts MATCH ?
			ORDER BY rank LIMIT ? OFFSET ?`,
			ftsQuery(q.Query), q.Limit, q.Offset,
		)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, summary, COALESCE(ts, '')
			FROM documents
			ORDER BY ts IS NULL, ts DESC LIMIT ? OFFSET ?`,
			q.Limit, q.Offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Summary, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetStats returns aggregate statistics about the catalog.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM documents", &stats.TotalDocuments},
		{"SELECT COUNT(*) FROM documents WHERE ts IS NOT NULL", &stats.DocumentsWithTimestamp},
		{"SELECT COUNT(*) FROM keywords", &stats.TotalKeywords},
		{"SELECT COUNT(*) FROM keywords WHERE retained = 1", &stats.RetainedKeywords},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("catalog counts: %w", err)
		}
	}

	var lastRun sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT MAX(finished_at) FROM runs").Scan(&lastRun)
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	if lastRun.Valid {
		stats.HasRun = true
		stats.LastRun, _ = time.Parse(time.RFC3339, lastRun.String)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, total_files FROM keywords
		WHERE retained = 1 ORDER BY rank LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("top keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.TotalFiles); err != nil {
			return nil, err
		}
		stats.TopKeywords = append(stats.TopKeywords, kc)
	}

	return stats, rows.Err()
}

// PurgeAll deletes the entire catalog, including run history.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DROP TABLE IF EXISTS summaries_fts",
		"DELETE FROM doc_keywords",
		"DELETE FROM documents",
		"DELETE FROM keywords",
		"DELETE FROM runs",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	// Recreate FTS table
	return s.initFTS()
}

// Close releases store resources. The underlying *sql.DB is NOT closed;
// that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	return nil
}
