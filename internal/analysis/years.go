package analysis

import (
	"sort"

	"github.com/runnerr0/caseline/internal/corpus"
)

// BuildYearTimeline buckets every document with a declared keyword list and a
// valid canonical timestamp by calendar year. Documents without a valid
// timestamp are omitted entirely, unlike per-keyword timelines which keep
// them undated at the tail. Within a year, entries sort ascending by
// timestamp string; the ISO layout makes that date-correct.
func BuildYearTimeline(docs []*corpus.Document, ix *KeywordIndex, opts Options) map[int][]*YearEntry {
	byYear := make(map[int][]*YearEntry)

	for _, doc := range docs {
		if len(ix.DocKeywords[doc.ID]) == 0 {
			continue
		}
		when, raw, ok := SelectCanonical(doc, opts.MinYear, opts.Cutoff)
		if !ok {
			continue
		}
		year := when.Year()
		byYear[year] = append(byYear[year], &YearEntry{
			FileID:       doc.ID,
			Summary:      summaryFor(doc.Summary, doc.HasSummary),
			Timestamp:    when.Format(TimestampLayout),
			TimestampRaw: raw,
			Keywords:     ix.Keywords(doc.ID),
		})
	}

	for _, entries := range byYear {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp < entries[j].Timestamp
		})
	}
	return byYear
}

// Years returns the sorted year list and total entry count of a year
// timeline.
func Years(byYear map[int][]*YearEntry) (years []int, total int) {
	for year, entries := range byYear {
		years = append(years, year)
		total += len(entries)
	}
	sort.Ints(years)
	return years, total
}
