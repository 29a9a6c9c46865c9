package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/runnerr0/caseline/internal/analysis"
)

// Well-known output filenames.
const (
	IndexFile          = "index.json"
	YearTimelineFile   = "timeline_by_year.json"
	RelationStatsFile  = "relationship_stats.json"
	keywordFilePrefix  = "keyword_"
	legacyConnectionsF = "keyword_connections.json"
)

// KeywordFileName builds the filename for a keyword record:
// keyword_NNN_<slug>.json with the 1-based rank zero-padded to three digits.
func KeywordFileName(rank int, keyword string) string {
	return fmt.Sprintf("%s%03d_%s.json", keywordFilePrefix, rank, sanitize(keyword))
}

// sanitize converts a keyword into a safe lowercase filename fragment,
// truncated to 50 characters.
func sanitize(keyword string) string {
	safe := keyword
	for _, ch := range []string{" ", "/", "\\", ":", "*", "?", `"`, "<", ">", "|", "."} {
		safe = strings.ReplaceAll(safe, ch, "_")
	}
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return strings.ToLower(safe)
}

// WriteJSON writes v to path as two-space-indented UTF-8 JSON without HTML
// escaping, so keyword text and summaries round-trip byte-for-byte.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadKeywordRecord loads one previously written keyword record.
func ReadKeywordRecord(path string) (*analysis.KeywordRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var rec analysis.KeywordRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// ListKeywordFiles returns the sorted keyword record paths in dir. The legacy
// connections file shares the prefix and is skipped.
func ListKeywordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	var paths []string
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasPrefix(name, keywordFilePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name == legacyConnectionsF {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// WriteAnalysis persists a full analysis result: the index, the year
// timeline, and one file per keyword record in rank order. The directory is
// created if missing.
func WriteAnalysis(dir string, res *analysis.Result, index *analysis.Index) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := WriteJSON(filepath.Join(dir, IndexFile), index); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(dir, YearTimelineFile), res.ByYear); err != nil {
		return err
	}
	for i, rec := range res.Keywords {
		path := filepath.Join(dir, KeywordFileName(i+1, rec.Keyword))
		if err := WriteJSON(path, rec); err != nil {
			return err
		}
	}
	return nil
}
