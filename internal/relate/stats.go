package relate

import "github.com/runnerr0/caseline/internal/analysis"

// Stats summarizes the relationship pass across every keyword timeline.
type Stats struct {
	TotalDocuments         int            `json:"total_documents"`
	DocumentsWithPrevious  int            `json:"documents_with_previous"`
	DocumentsWithNext      int            `json:"documents_with_next"`
	SimilarityDistribution map[string]int `json:"similarity_distribution"`
	AvgRelationshipsPerDoc float64        `json:"avg_relationships_per_doc"`
}

// ComputeStats aggregates link counts and the category histogram over a set
// of annotated keyword records. Documents appearing on several timelines are
// counted once per timeline, matching how the records are consumed.
func ComputeStats(records []*analysis.KeywordRecord) *Stats {
	stats := &Stats{
		SimilarityDistribution: make(map[string]int),
	}

	totalLinks := 0
	for _, rec := range records {
		stats.TotalDocuments += len(rec.Timeline)
		for _, entry := range rec.Timeline {
			if entry.Relationships == nil {
				continue
			}
			if len(entry.Relationships.Previous) > 0 {
				stats.DocumentsWithPrevious++
			}
			if len(entry.Relationships.Next) > 0 {
				stats.DocumentsWithNext++
			}
			totalLinks += len(entry.Relationships.Previous) + len(entry.Relationships.Next)
			for _, link := range entry.Relationships.Previous {
				stats.SimilarityDistribution[link.Category]++
			}
			for _, link := range entry.Relationships.Next {
				stats.SimilarityDistribution[link.Category]++
			}
		}
	}

	if stats.TotalDocuments > 0 {
		stats.AvgRelationshipsPerDoc = round(float64(totalLinks)/float64(stats.TotalDocuments), 2)
	}
	return stats
}
