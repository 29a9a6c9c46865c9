package config

// DefaultBlacklistSubstrings returns keyword substrings that should never
// survive filtering. The upstream keyword generator tags redaction artifacts
// with variations of "redaction", none of which are useful index terms.
func DefaultBlacklistSubstrings() []string {
	return []string{
		"redaction",
	}
}

// FillerOpeners returns the introductory phrases the upstream summarizer
// tends to emit as a first sentence. Summary cleaning strips the first
// sentence when it starts with one of these, case-insensitively. Both
// straight and curly apostrophe variants occur in the corpus.
func FillerOpeners() []string {
	return []string{
		"here's a summary",
		"here's a factual summary",
		"here is a summary",
		"here is a factual summary",
		"here’s a factual summary",
		"here’s a summary",
	}
}
