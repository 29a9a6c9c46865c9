package analysis

import (
	"sort"
	"strings"

	"github.com/runnerr0/caseline/internal/corpus"
)

// BuildTimelines assembles one KeywordRecord per retained keyword, in the
// given rank order. Each record's timeline holds the keyword-match documents
// (keyword in the declared list) plus the content-match documents (keyword
// substring in the summary, not declared), sorted ascending by canonical
// timestamp with undated entries at the tail. After all records are built
// they are re-ranked by total file count descending, so the published order
// differs from the occurrence-count order used during construction.
func BuildTimelines(docs []*corpus.Document, ix *KeywordIndex, ranked []RankedKeyword, opts Options) []*KeywordRecord {
	records := make([]*KeywordRecord, 0, len(ranked))

	for _, rk := range ranked {
		matched := ix.DocIDs[rk.Keyword]

		var entries []*TimelineEntry
		contentCount := 0

		for _, doc := range docs {
			if _, ok := matched[doc.ID]; ok {
				entries = append(entries, newEntry(doc, ix, MatchKeyword, opts))
			}
		}
		for _, doc := range docs {
			if _, ok := matched[doc.ID]; ok {
				continue
			}
			if !doc.HasSummary {
				continue
			}
			if strings.Contains(strings.ToLower(doc.Summary), rk.Keyword) {
				entries = append(entries, newEntry(doc, ix, MatchContent, opts))
				contentCount++
			}
		}

		sortTimeline(entries)

		records = append(records, &KeywordRecord{
			Keyword:           rk.Keyword,
			Count:             rk.Count,
			KeywordMatchCount: len(matched),
			ContentMatchCount: contentCount,
			TotalFiles:        len(matched) + contentCount,
			Timeline:          entries,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalFiles > records[j].TotalFiles
	})
	return records
}

// newEntry builds one timeline entry with its canonical timestamp and
// cleaned summary attached.
func newEntry(doc *corpus.Document, ix *KeywordIndex, matchType string, opts Options) *TimelineEntry {
	entry := &TimelineEntry{
		FileID:    doc.ID,
		Summary:   summaryFor(doc.Summary, doc.HasSummary),
		Keywords:  ix.Keywords(doc.ID),
		MatchType: matchType,
	}
	if when, raw, ok := SelectCanonical(doc, opts.MinYear, opts.Cutoff); ok {
		ts := when.Format(TimestampLayout)
		entry.Timestamp = &ts
		entry.TimestampRaw = &raw
	}
	return entry
}

// sortTimeline orders entries ascending by timestamp. Undated entries sort
// after every dated one, keeping their relative order.
func sortTimeline(entries []*TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Timestamp, entries[j].Timestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
