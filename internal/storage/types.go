package storage

import "time"

// DocumentRow is a catalog row for one analyzed document.
type DocumentRow struct {
	ID           string
	Summary      string
	Timestamp    string // canonical timestamp, "" when none fell in the validity window
	TimestampRaw string
	Keywords     []string
}

// KeywordRow is a catalog row for one distinct keyword.
type KeywordRow struct {
	Keyword           string
	Occurrences       int
	Retained          bool
	Rank              int // 1-based final rank when retained, 0 otherwise
	KeywordMatchCount int
	ContentMatchCount int
	TotalFiles        int
}

// RunRow records one completed analysis run.
type RunRow struct {
	StartedAt              time.Time
	FinishedAt             time.Time
	TotalDocuments         int
	TotalKeywords          int
	RetainedKeywords       int
	DocumentsWithTimestamp int
	MinOccurrences         int
}

// SearchQuery defines a summary search.
type SearchQuery struct {
	Query  string
	Limit  int
	Offset int
}

// SearchResult is one summary search hit.
type SearchResult struct {
	DocID     string
	Summary   string
	Timestamp string
}

// Stats holds aggregate statistics about the catalog.
type Stats struct {
	TotalDocuments         int64
	DocumentsWithTimestamp int64
	TotalKeywords          int64
	RetainedKeywords       int64
	LastRun                time.Time
	HasRun                 bool
	TopKeywords            []KeywordCount
}

// KeywordCount pairs a keyword with its total file count.
type KeywordCount struct {
	Keyword    string
	TotalFiles int64
}
