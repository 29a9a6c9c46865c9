package storage

import "database/sql"

// migrateV001 creates the initial Caseline catalog schema. Every statement
// uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                       INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at               DATETIME NOT NULL,
			finished_at              DATETIME NOT NULL,
			total_documents          INTEGER NOT NULL DEFAULT 0,
			total_keywords           INTEGER NOT NULL DEFAULT 0,
			retained_keywords        INTEGER NOT NULL DEFAULT 0,
			documents_with_timestamp INTEGER NOT NULL DEFAULT 0,
			min_occurrences          INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			summary    TEXT NOT NULL DEFAULT '',
			ts         TEXT,
			ts_raw     TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS keywords (
			keyword             TEXT PRIMARY KEY,
			occurrences         INTEGER NOT NULL DEFAULT 0,
			retained            BOOLEAN NOT NULL DEFAULT 0,
			rank                INTEGER,
			keyword_match_count INTEGER NOT NULL DEFAULT 0,
			content_match_count INTEGER NOT NULL DEFAULT 0,
			total_files         INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS doc_keywords (
			doc_id  TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			keyword TEXT NOT NULL,
			pos     INTEGER NOT NULL,
			PRIMARY KEY (doc_id, pos)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_documents_ts      ON documents(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_keywords_retained ON keywords(retained, rank)`,
		`CREATE INDEX IF NOT EXISTS idx_doc_keywords_kw   ON doc_keywords(keyword)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished     ON runs(finished_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
