package analysis

import "time"

// Timestamps are serialized the way the viewer expects them: local ISO-8601
// without zone, so string comparison orders them correctly.
const TimestampLayout = "2006-01-02T15:04:05"

// Options carries the knobs for one pipeline run.
type Options struct {
	MinOccurrences      int
	MinKeywordLength    int
	BlacklistSubstrings []string
	ExcludeYears        bool
	SkipHeaderLines     int
	MinYear             int
	Cutoff              time.Time
}

// TimelineEntry is one document on a keyword timeline. Timestamp and
// TimestampRaw are nil when the document has no canonical timestamp inside
// the validity window; such entries sort to the tail of the timeline.
type TimelineEntry struct {
	FileID        string         `json:"file_id"`
	Summary       string         `json:"summary"`
	Timestamp     *string        `json:"timestamp"`
	TimestampRaw  *string        `json:"timestamp_raw"`
	Keywords      []string       `json:"keywords"`
	MatchType     string         `json:"match_type"`
	Relationships *Relationships `json:"relationships,omitempty"`
}

// Match types for timeline entries. A document appears on a keyword's
// timeline via exactly one of the two.
const (
	MatchKeyword = "keyword"
	MatchContent = "content"
)

// Relationships holds the bounded-window related-document links computed by
// the relationship pass.
type Relationships struct {
	Previous []Link `json:"previous"`
	Next     []Link `json:"next"`
}

// Link points from a timeline entry to a related document.
type Link struct {
	FileID     string  `json:"file_id"`
	Similarity float64 `json:"similarity"`
	Index      int     `json:"index"`
	Category   string  `json:"category"`
}

// KeywordRecord is the per-keyword output record.
type KeywordRecord struct {
	Keyword           string           `json:"keyword"`
	Count             int              `json:"count"`
	KeywordMatchCount int              `json:"keyword_match_count"`
	ContentMatchCount int              `json:"content_match_count"`
	TotalFiles        int              `json:"total_files"`
	Timeline          []*TimelineEntry `json:"timeline"`
}

// YearEntry is one document on the year-bucketed master timeline. Only
// documents with a valid canonical timestamp appear here, so Timestamp is
// never empty.
type YearEntry struct {
	FileID       string   `json:"file_id"`
	Summary      string   `json:"summary"`
	Timestamp    string   `json:"timestamp"`
	TimestampRaw string   `json:"timestamp_raw"`
	Keywords     []string `json:"keywords"`
}

// Index is the global index record tying the output set together.
type Index struct {
	Metadata           IndexMetadata             `json:"metadata"`
	TopKeywords        []IndexKeyword            `json:"top_keywords"`
	KeywordConnections map[string]map[string]int `json:"keyword_connections"`
	TimelineByYear     YearIndex                 `json:"timeline_by_year"`
}

type IndexMetadata struct {
	GeneratedAt         string `json:"generated_at"`
	TotalFiles          int    `json:"total_files"`
	TotalKeywords       int    `json:"total_keywords"`
	MinOccurrences      int    `json:"min_occurrences"`
	KeywordsIncluded    int    `json:"keywords_included"`
	FilesWithTimestamps int    `json:"files_with_timestamps"`
}

type IndexKeyword struct {
	Keyword    string `json:"keyword"`
	Count      int    `json:"count"`
	FileCount  int    `json:"file_count"`
	TotalFiles int    `json:"total_files"`
	DataFile   string `json:"data_file"`
}

type YearIndex struct {
	Years      []int  `json:"years"`
	TotalFiles int    `json:"total_files"`
	DataFile   string `json:"data_file"`
}

// Result is everything one pipeline run produces.
type Result struct {
	Keywords            []*KeywordRecord // final rank order (by total files)
	ByYear              map[int][]*YearEntry
	Connections         map[string]map[string]int
	KeywordCounts       map[string]int // raw occurrence counts, unfiltered
	TotalFiles          int            // documents with at least one declared keyword
	TotalKeywords       int            // distinct keywords before filtering
	FilesWithTimestamps int            // documents with at least one candidate
}
