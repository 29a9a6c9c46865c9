package dates

import (
	"regexp"
	"strings"
	"time"
)

// Candidate is one raw date match recovered from text, paired with the
// calendar date it resolved to.
type Candidate struct {
	Raw  string
	When time.Time
}

const (
	longMonths  = `January|February|March|April|May|June|July|August|September|October|November|December`
	shortMonths = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec`
)

// grammars are tried in priority order against every piece of text. A single
// line may yield one candidate per grammar, including overlapping matches;
// disambiguation happens in Resolve, not here.
var grammars = []*regexp.Regexp{
	// Full month name: "March 5, 2024" / "5 March 2024"
	regexp.MustCompile(`(?i)\b(` + longMonths + `)\s+(\d{1,2}),?\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + longMonths + `),?\s+(\d{4})\b`),

	// Abbreviated month name: "Mar. 5, 2024" / "5 Mar 2024"
	regexp.MustCompile(`(?i)\b(` + shortMonths + `)\.?\s+(\d{1,2}),?\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + shortMonths + `)\.?,?\s+(\d{4})\b`),

	// Numeric: MM/DD/YYYY, MM-DD-YYYY, YYYY/MM/DD, YYYY-MM-DD
	regexp.MustCompile(`(?i)\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`),

	// "Date:" prefixed
	regexp.MustCompile(`(?i)Date:\s*(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(?i)Date:\s*(` + longMonths + `)\s+(\d{1,2}),?\s+(\d{4})`),
	regexp.MustCompile(`(?i)Date:\s*(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),

	// Legal phrasing: "dated this 5th day of March, 2024"
	regexp.MustCompile(`(?i)dated\s+(?:at\s+)?(?:\w+,?\s+)?(?:\w+\s+)?(?:this\s+)?(\d{1,2})(?:st|nd|rd|th)?\s+day\s+of\s+(` + longMonths + `),?\s+(\d{4})`),
}

// ScanText applies every grammar to text and returns the candidates that
// resolved to a calendar date, in grammar order then match order. Matches
// whose groups cannot be resolved are dropped.
func ScanText(text string) []Candidate {
	var out []Candidate
	for _, g := range grammars {
		for _, m := range g.FindAllStringSubmatch(text, -1) {
			when, ok := Resolve(m[1:])
			if !ok {
				continue
			}
			out = append(out, Candidate{Raw: m[0], When: when})
		}
	}
	return out
}

// ScanLines scans text line by line, skipping the first skip lines. Original
// documents carry a generation timestamp injected by an upstream tool in
// their header, so callers pass a positive skip for those.
func ScanLines(text string, skip int) []Candidate {
	var out []Candidate
	for i, line := range strings.Split(text, "\n") {
		if i < skip {
			continue
		}
		out = append(out, ScanText(line)...)
	}
	return out
}
