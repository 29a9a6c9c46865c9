package analysis

import (
	"testing"
	"time"

	"github.com/runnerr0/caseline/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildYearTimeline(t *testing.T) {
	docs := []*corpus.Document{
		datedDoc("B2021", time.Date(2021, 8, 1, 0, 0, 0, 0, time.UTC), "topic"),
		datedDoc("A2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "topic"),
		datedDoc("ONLY2015", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), "topic"),
		// Valid date but no declared keywords: excluded.
		datedDoc("NOKW", time.Date(2021, 5, 5, 0, 0, 0, 0, time.UTC)),
		// Declared keywords but no valid date: excluded.
		{ID: "NODATE", Keywords: []string{"topic"}},
	}

	ix := BuildKeywordIndex(docs)
	byYear := BuildYearTimeline(docs, ix, testOptions())

	require.Len(t, byYear, 2)
	require.Len(t, byYear[2021], 2)
	assert.Equal(t, "A2021", byYear[2021][0].FileID)
	assert.Equal(t, "B2021", byYear[2021][1].FileID)
	assert.Equal(t, "2021-03-01T00:00:00", byYear[2021][0].Timestamp)

	require.Len(t, byYear[2015], 1)
	assert.Equal(t, "ONLY2015", byYear[2015][0].FileID)

	years, total := Years(byYear)
	assert.Equal(t, []int{2015, 2021}, years)
	assert.Equal(t, 3, total)
}

func TestYears_Empty(t *testing.T) {
	years, total := Years(map[int][]*YearEntry{})
	assert.Nil(t, years)
	assert.Equal(t, 0, total)
}
