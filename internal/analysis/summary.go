package analysis

import (
	"regexp"
	"strings"

	"github.com/runnerr0/caseline/internal/config"
	"github.com/runnerr0/caseline/internal/corpus"
)

// noSummaryText is recorded for documents whose summary file is missing.
const noSummaryText = "No summary available"

// sentenceBoundary splits a summary into its first sentence and the rest.
var sentenceBoundary = regexp.MustCompile(`\.\s+`)

// CleanSummary strips a single leading filler sentence ("Here's a summary…")
// from a generated summary. Only the first sentence is ever removed, and only
// on an exact case-insensitive prefix match; anything else is returned
// unchanged.
func CleanSummary(summary string) string {
	if summary == "" {
		return summary
	}

	loc := sentenceBoundary.FindStringIndex(summary)
	if loc == nil {
		return summary
	}

	first := strings.ToLower(strings.TrimSpace(summary[:loc[0]]))
	for _, phrase := range config.FillerOpeners() {
		if strings.HasPrefix(first, phrase) {
			return strings.TrimSpace(summary[loc[1]:])
		}
	}
	return summary
}

// summaryFor returns the cleaned display summary for a document's raw
// summary text, substituting a placeholder when none was recorded.
func summaryFor(raw string, hasSummary bool) string {
	if !hasSummary {
		return CleanSummary(noSummaryText)
	}
	return CleanSummary(raw)
}

// DisplaySummary is the display summary for a document, as it appears in
// every output record.
func DisplaySummary(doc *corpus.Document) string {
	return summaryFor(doc.Summary, doc.HasSummary)
}
