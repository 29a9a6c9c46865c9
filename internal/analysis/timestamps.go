package analysis

import (
	"time"

	"github.com/runnerr0/caseline/internal/corpus"
	"github.com/runnerr0/caseline/internal/dates"
)

// ExtractCandidates populates each document's timestamp candidates. The
// summary is scanned first; only when it yields nothing is the original text
// scanned, with the injected header lines skipped. Sources are never mixed
// within one document, so summary-sourced candidates always outrank
// original-sourced ones. Returns the number of documents that ended up with
// at least one candidate.
func ExtractCandidates(docs []*corpus.Document, skipHeaderLines int) int {
	withTimestamps := 0
	for _, doc := range docs {
		if !doc.HasOriginal {
			continue
		}
		doc.Candidates = dates.ScanText(doc.Summary)
		if len(doc.Candidates) == 0 {
			doc.Candidates = dates.ScanLines(doc.Text, skipHeaderLines)
		}
		if len(doc.Candidates) > 0 {
			withTimestamps++
		}
	}
	return withTimestamps
}

// SelectCanonical returns the single canonical timestamp for a document: the
// first candidate in scan order, accepted only when its year is at least
// minYear and it falls strictly before the cutoff. Every view of the corpus
// (per-keyword timelines, the year timeline, the catalog) goes through this
// one function so they can never disagree.
func SelectCanonical(doc *corpus.Document, minYear int, cutoff time.Time) (when time.Time, raw string, ok bool) {
	if len(doc.Candidates) == 0 {
		return time.Time{}, "", false
	}
	best := doc.Candidates[0]
	if best.When.Year() < minYear || !best.When.Before(cutoff) {
		return time.Time{}, "", false
	}
	return best.When, best.Raw, true
}
