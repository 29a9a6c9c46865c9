package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/runnerr0/caseline/internal/dates"
)

const (
	summarySuffix = "_summary.txt"
	keywordSuffix = "_keywords.txt"
)

// Document is one corpus entry, assembled from up to three files sharing a
// stem: the original text, a generated summary, and a declared keyword list.
type Document struct {
	ID          string
	Text        string
	HasOriginal bool
	Summary     string
	HasSummary  bool
	Keywords    []string // lowercased, trimmed, first-seen order, duplicates kept

	// Candidates holds the timestamp candidates extracted for this document.
	// Populated by the analysis stage, never mixed across sources: all
	// summary-sourced or all original-sourced.
	Candidates []dates.Candidate
}

// Corpus holds all loaded documents in deterministic order: documents with an
// original file first (sorted by filename), then keyword-only documents.
type Corpus struct {
	Documents []*Document
	byID      map[string]*Document
}

// Get returns the document with the given ID, or nil.
func (c *Corpus) Get(id string) *Document {
	return c.byID[id]
}

// Load reads the corpus from an originals directory (*.txt) and a summaries
// directory (<stem>_summary.txt, <stem>_keywords.txt). Document IDs are
// extracted from filenames with idPattern; when the pattern does not match,
// the file stem is used. A missing summary or keyword file is absence, not an
// error; unreadable files are reported on stderr and skipped.
func Load(originalsDir, summariesDir string, idPattern *regexp.Regexp) (*Corpus, error) {
	c := &Corpus{byID: make(map[string]*Document)}

	originals, err := os.ReadDir(originalsDir)
	if err != nil {
		return nil, fmt.Errorf("read originals directory: %w", err)
	}

	for _, ent := range originals {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(ent.Name(), ".txt")
		doc := c.add(documentID(ent.Name(), idPattern))

		data, err := os.ReadFile(filepath.Join(originalsDir, ent.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", ent.Name(), err)
		} else {
			doc.Text = string(data)
			doc.HasOriginal = true
		}

		loadSummary(doc, filepath.Join(summariesDir, stem+summarySuffix))
		loadKeywords(doc, filepath.Join(summariesDir, stem+keywordSuffix))
	}

	// Keyword files whose stem has no original document still contribute
	// keywords to the index.
	extras, err := os.ReadDir(summariesDir)
	if err != nil {
		return nil, fmt.Errorf("read summaries directory: %w", err)
	}
	var orphaned []string
	for _, ent := range extras {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), keywordSuffix) {
			continue
		}
		if c.byID[documentID(ent.Name(), idPattern)] == nil {
			orphaned = append(orphaned, ent.Name())
		}
	}
	sort.Strings(orphaned)
	for _, name := range orphaned {
		doc := c.add(documentID(name, idPattern))
		loadKeywords(doc, filepath.Join(summariesDir, name))
	}

	return c, nil
}

func (c *Corpus) add(id string) *Document {
	if doc := c.byID[id]; doc != nil {
		return doc
	}
	doc := &Document{ID: id}
	c.byID[id] = doc
	c.Documents = append(c.Documents, doc)
	return doc
}

// documentID extracts the stable document identifier from a filename.
func documentID(name string, idPattern *regexp.Regexp) string {
	if idPattern != nil {
		if id := idPattern.FindString(name); id != "" {
			return id
		}
	}
	stem := strings.TrimSuffix(name, ".txt")
	stem = strings.TrimSuffix(stem, "_summary")
	stem = strings.TrimSuffix(stem, "_keywords")
	return stem
}

// loadSummary reads a summary file: non-empty lines that are not header or
// separator lines, trimmed and joined with single spaces.
func loadSummary(doc *Document, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		}
		return
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "=") || strings.HasPrefix(line, "Summary") {
			continue
		}
		lines = append(lines, line)
	}
	doc.Summary = strings.Join(lines, " ")
	doc.HasSummary = true
}

// loadKeywords reads a keyword file: comma-separated values on lines that are
// not header or separator lines, trimmed and lowercased.
func loadKeywords(doc *Document, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		}
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "=") ||
			strings.HasPrefix(line, "Keywords") ||
			strings.HasPrefix(line, "Summary") {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			kw := strings.ToLower(strings.TrimSpace(part))
			if kw != "" {
				doc.Keywords = append(doc.Keywords, kw)
			}
		}
	}
}
