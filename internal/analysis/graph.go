package analysis

// BuildConnections computes the keyword co-occurrence graph: for every
// unordered pair of retained keywords (i<j in rank order), the number of
// documents declaring both. Pairs sharing no documents are omitted, but every
// keyword gets an entry so the graph's node set is complete. Quadratic in the
// retained keyword count, which the occurrence threshold keeps small.
func BuildConnections(records []*KeywordRecord, ix *KeywordIndex) map[string]map[string]int {
	connections := make(map[string]map[string]int, len(records))

	for i, a := range records {
		connections[a.Keyword] = make(map[string]int)
		docsA := ix.DocIDs[a.Keyword]

		for j, b := range records {
			if i >= j {
				continue
			}
			shared := 0
			for id := range docsA {
				if _, ok := ix.DocIDs[b.Keyword][id]; ok {
					shared++
				}
			}
			if shared > 0 {
				connections[a.Keyword][b.Keyword] = shared
			}
		}
	}
	return connections
}
