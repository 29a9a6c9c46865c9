package analysis

import (
	"time"

	"github.com/runnerr0/caseline/internal/corpus"
)

// Run executes the full analysis pipeline over a loaded corpus: extract
// timestamp candidates, build the keyword index, assemble per-keyword
// timelines, bucket the year timeline, and compute the co-occurrence graph.
// All aggregation state lives in locals threaded through the stages; nothing
// survives the call but the Result.
func Run(c *corpus.Corpus, opts Options) *Result {
	withTimestamps := ExtractCandidates(c.Documents, opts.SkipHeaderLines)

	ix := BuildKeywordIndex(c.Documents)
	ranked := ix.Retained(opts)

	records := BuildTimelines(c.Documents, ix, ranked, opts)
	byYear := BuildYearTimeline(c.Documents, ix, opts)
	connections := BuildConnections(records, ix)

	return &Result{
		Keywords:            records,
		ByYear:              byYear,
		Connections:         connections,
		KeywordCounts:       ix.Counts,
		TotalFiles:          len(ix.DocKeywords),
		TotalKeywords:       len(ix.Counts),
		FilesWithTimestamps: withTimestamps,
	}
}

// BuildIndex assembles the global index record. dataFileFor maps a keyword's
// 1-based rank and name to the filename its record is written under.
func BuildIndex(res *Result, opts Options, generatedAt time.Time, dataFileFor func(rank int, keyword string) string) *Index {
	years, yearTotal := Years(res.ByYear)
	if years == nil {
		years = []int{}
	}

	top := make([]IndexKeyword, len(res.Keywords))
	for i, rec := range res.Keywords {
		top[i] = IndexKeyword{
			Keyword:    rec.Keyword,
			Count:      rec.Count,
			FileCount:  rec.KeywordMatchCount,
			TotalFiles: rec.TotalFiles,
			DataFile:   dataFileFor(i+1, rec.Keyword),
		}
	}

	return &Index{
		Metadata: IndexMetadata{
			GeneratedAt:         generatedAt.Format("2006-01-02T15:04:05.000000"),
			TotalFiles:          res.TotalFiles,
			TotalKeywords:       res.TotalKeywords,
			MinOccurrences:      opts.MinOccurrences,
			KeywordsIncluded:    len(res.Keywords),
			FilesWithTimestamps: res.FilesWithTimestamps,
		},
		TopKeywords:        top,
		KeywordConnections: res.Connections,
		TimelineByYear: YearIndex{
			Years:      years,
			TotalFiles: yearTotal,
			DataFile:   "timeline_by_year.json",
		},
	}
}
