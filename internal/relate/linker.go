package relate

import (
	"math"

	"github.com/runnerr0/caseline/internal/analysis"
)

// Similarity category names, keyed by score.
const (
	CategoryHigh     = "highly_relevant"
	CategoryRelevant = "relevant"
	CategorySomewhat = "somewhat_relevant"
	CategoryLow      = "low_relevance"
)

// Similarity returns the Jaccard similarity of two keyword lists: the size of
// the intersection of their distinct keywords over the size of the union.
// Zero when either set is empty.
func Similarity(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for kw := range setA {
		if _, ok := setB[kw]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// Categorize maps a similarity score to its category label. The scale is
// wider than the default search threshold on purpose: the lower categories
// only become reachable when the threshold is configured below 0.5.
func Categorize(similarity float64) string {
	switch {
	case similarity >= 0.7:
		return CategoryHigh
	case similarity >= 0.5:
		return CategoryRelevant
	case similarity >= 0.3:
		return CategorySomewhat
	default:
		return CategoryLow
	}
}

// FindRelated scans outward from the entry at idx, collecting up to
// maxNeighbors documents in each direction whose keyword-set similarity meets
// the threshold. Each direction stops early once filled, so the worst case is
// a full one-sided scan when few neighbors qualify.
func FindRelated(timeline []*analysis.TimelineEntry, idx int, threshold float64, maxNeighbors int) *analysis.Relationships {
	current := timeline[idx].Keywords
	rel := &analysis.Relationships{
		Previous: []analysis.Link{},
		Next:     []analysis.Link{},
	}

	for i := idx - 1; i >= 0 && len(rel.Previous) < maxNeighbors; i-- {
		if sim := Similarity(current, timeline[i].Keywords); sim >= threshold {
			rel.Previous = append(rel.Previous, newLink(timeline[i].FileID, i, sim))
		}
	}
	for i := idx + 1; i < len(timeline) && len(rel.Next) < maxNeighbors; i++ {
		if sim := Similarity(current, timeline[i].Keywords); sim >= threshold {
			rel.Next = append(rel.Next, newLink(timeline[i].FileID, i, sim))
		}
	}
	return rel
}

// Annotate rewrites every timeline entry of a keyword record with its
// relationship links.
func Annotate(rec *analysis.KeywordRecord, threshold float64, maxNeighbors int) {
	for idx, entry := range rec.Timeline {
		entry.Relationships = FindRelated(rec.Timeline, idx, threshold, maxNeighbors)
	}
}

// newLink stores the similarity rounded to three decimals; the category is
// derived from the rounded value so the two never disagree in output.
func newLink(fileID string, index int, similarity float64) analysis.Link {
	rounded := round(similarity, 3)
	return analysis.Link{
		FileID:     fileID,
		Similarity: rounded,
		Index:      index,
		Category:   Categorize(rounded),
	}
}

func round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

func toSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}
