package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/runnerr0/caseline/internal/corpus"
)

// KeywordIndex aggregates declared keyword lists across the corpus: total
// occurrence counts, keyword to document-set, and document to ordered keyword
// list. One index is built per run and discarded with it.
type KeywordIndex struct {
	Counts      map[string]int
	DocIDs      map[string]map[string]struct{}
	DocKeywords map[string][]string

	order []string // first-seen keyword order, for stable tie-breaking
}

// RankedKeyword pairs a retained keyword with its raw occurrence count.
type RankedKeyword struct {
	Keyword string
	Count   int
}

// BuildKeywordIndex walks documents in corpus order and accumulates their
// declared keywords. Duplicate declarations count every time and are kept in
// the per-document list.
func BuildKeywordIndex(docs []*corpus.Document) *KeywordIndex {
	ix := &KeywordIndex{
		Counts:      make(map[string]int),
		DocIDs:      make(map[string]map[string]struct{}),
		DocKeywords: make(map[string][]string),
	}

	for _, doc := range docs {
		for _, kw := range doc.Keywords {
			if _, seen := ix.Counts[kw]; !seen {
				ix.order = append(ix.order, kw)
			}
			ix.Counts[kw]++
			set := ix.DocIDs[kw]
			if set == nil {
				set = make(map[string]struct{})
				ix.DocIDs[kw] = set
			}
			set[doc.ID] = struct{}{}
			ix.DocKeywords[doc.ID] = append(ix.DocKeywords[doc.ID], kw)
		}
	}

	return ix
}

// Retained filters and ranks the index: keywords shorter than the minimum,
// containing a blacklisted substring, or consisting of a bare four-digit year
// (1900-2099) are dropped; the rest must meet the occurrence threshold. The
// result is sorted by count descending, ties broken by first-seen order.
func (ix *KeywordIndex) Retained(opts Options) []RankedKeyword {
	var ranked []RankedKeyword
	for _, kw := range ix.order {
		if len(strings.TrimSpace(kw)) < opts.MinKeywordLength {
			continue
		}
		if containsAny(kw, opts.BlacklistSubstrings) {
			continue
		}
		if opts.ExcludeYears && isBareYear(kw) {
			continue
		}
		if ix.Counts[kw] < opts.MinOccurrences {
			continue
		}
		ranked = append(ranked, RankedKeyword{Keyword: kw, Count: ix.Counts[kw]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Keywords returns the per-document keyword list, never nil.
func (ix *KeywordIndex) Keywords(docID string) []string {
	if kws := ix.DocKeywords[docID]; kws != nil {
		return kws
	}
	return []string{}
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isBareYear reports whether a keyword is exactly a four-digit year in
// [1900, 2099].
func isBareYear(kw string) bool {
	kw = strings.TrimSpace(kw)
	if len(kw) != 4 {
		return false
	}
	n, err := strconv.Atoi(kw)
	if err != nil {
		return false
	}
	return n >= 1900 && n <= 2099
}
