package relate

import (
	"testing"

	"github.com/runnerr0/caseline/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"x", "y"}, []string{"x", "y"}, 1.0},
		{"disjoint", []string{"x", "y"}, []string{"z"}, 0.0},
		{"half overlap", []string{"x", "y"}, []string{"y", "z"}, 1.0 / 3.0},
		{"both empty", nil, nil, 0.0},
		{"one empty", []string{"x"}, nil, 0.0},
		{"duplicates collapse", []string{"x", "x", "y"}, []string{"x", "y", "y"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryHigh, Categorize(0.7))
	assert.Equal(t, CategoryHigh, Categorize(1.0))
	assert.Equal(t, CategoryRelevant, Categorize(0.5))
	assert.Equal(t, CategoryRelevant, Categorize(0.69))
	assert.Equal(t, CategorySomewhat, Categorize(0.3))
	assert.Equal(t, CategorySomewhat, Categorize(0.49))
	assert.Equal(t, CategoryLow, Categorize(0.29))
	assert.Equal(t, CategoryLow, Categorize(0.0))
}

func entry(id string, keywords ...string) *analysis.TimelineEntry {
	return &analysis.TimelineEntry{FileID: id, Keywords: keywords}
}

func TestFindRelated_Directions(t *testing.T) {
	timeline := []*analysis.TimelineEntry{
		entry("P2", "a", "b"),
		entry("P1", "a", "b"),
		entry("SELF", "a", "b"),
		entry("N1", "a", "b"),
		entry("N2", "a", "b"),
	}

	rel := FindRelated(timeline, 2, 0.5, 3)

	require.Len(t, rel.Previous, 2)
	// Nearest neighbor first.
	assert.Equal(t, "P1", rel.Previous[0].FileID)
	assert.Equal(t, 1, rel.Previous[0].Index)
	assert.Equal(t, "P2", rel.Previous[1].FileID)

	require.Len(t, rel.Next, 2)
	assert.Equal(t, "N1", rel.Next[0].FileID)
	assert.Equal(t, 3, rel.Next[0].Index)
	assert.Equal(t, "N2", rel.Next[1].FileID)
}

func TestFindRelated_CapsPerDirection(t *testing.T) {
	timeline := make([]*analysis.TimelineEntry, 0, 11)
	for i := 0; i < 11; i++ {
		timeline = append(timeline, entry("D", "a"))
	}

	rel := FindRelated(timeline, 5, 0.5, 3)
	assert.Len(t, rel.Previous, 3)
	assert.Len(t, rel.Next, 3)
}

func TestFindRelated_ThresholdOnUnroundedScore(t *testing.T) {
	timeline := []*analysis.TimelineEntry{
		entry("LOW", "a", "b", "c", "d"), // similarity 0.25 to SELF
		entry("SELF", "a"),
		entry("HIGH", "a"),
	}

	rel := FindRelated(timeline, 1, 0.5, 3)
	assert.Empty(t, rel.Previous)
	require.Len(t, rel.Next, 1)
	assert.Equal(t, "HIGH", rel.Next[0].FileID)
	assert.Equal(t, 1.0, rel.Next[0].Similarity)
	assert.Equal(t, CategoryHigh, rel.Next[0].Category)
}

func TestFindRelated_EdgesHaveEmptySlices(t *testing.T) {
	timeline := []*analysis.TimelineEntry{
		entry("ONLY", "a"),
	}

	rel := FindRelated(timeline, 0, 0.5, 3)
	assert.NotNil(t, rel.Previous)
	assert.NotNil(t, rel.Next)
	assert.Empty(t, rel.Previous)
	assert.Empty(t, rel.Next)
}

func TestNewLink_RoundsSimilarity(t *testing.T) {
	link := newLink("X", 4, 1.0/3.0)
	assert.Equal(t, 0.333, link.Similarity)
	assert.Equal(t, 4, link.Index)
	assert.Equal(t, CategorySomewhat, link.Category)
}

func TestAnnotate(t *testing.T) {
	rec := &analysis.KeywordRecord{
		Keyword: "topic",
		Timeline: []*analysis.TimelineEntry{
			entry("A", "x", "y"),
			entry("B", "x", "y"),
			entry("C", "z"),
		},
	}

	Annotate(rec, 0.5, 3)

	for _, e := range rec.Timeline {
		require.NotNil(t, e.Relationships)
	}
	assert.Len(t, rec.Timeline[0].Relationships.Next, 1)
	assert.Equal(t, "B", rec.Timeline[0].Relationships.Next[0].FileID)
	assert.Empty(t, rec.Timeline[2].Relationships.Previous)
	assert.Empty(t, rec.Timeline[2].Relationships.Next)
}
