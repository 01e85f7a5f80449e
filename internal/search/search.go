// Package search is the line search engine: it splits a corpus into lines and
// keeps, in corpus order, every line containing the query.
//
// The engine is pure. It never reads files, flags or environment variables,
// never fails, and never copies the corpus: every returned line is a Go
// substring sharing the corpus's backing memory.
package search

import (
	"strings"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/UnendingLoop/minigrep/internal/model"
)

// Span locates a line inside the corpus. Line is 1-based, Start and End are
// byte offsets of the line content, the terminator excluded.
type Span struct {
	Line  int
	Start int
	End   int
}

// Text returns the line of corpus described by s.
func (s Span) Text(corpus string) string {
	return corpus[s.Start:s.End]
}

// Lines splits corpus on "\n". A "\r" right before the "\n" is dropped, a
// trailing terminator does not produce an empty last line and an empty corpus
// has no lines at all.
func Lines(corpus string) []string {
	lines := make([]string, 0, strings.Count(corpus, "\n")+1)
	for line := range strings.Lines(corpus) {
		lines = append(lines, trimTerminator(line))
	}
	return lines
}

// Search returns the lines of corpus containing query, byte for byte.
//
//	Search("duct", "Rust:\nSafe, fast, productive.\nPick three.\nDuct one.")
//	// ["Safe, fast, productive."]
func Search(query, corpus string) []string {
	return filter(corpus, func(line string) bool { return matcher.Contains(line, query) })
}

// SearchCaseInsensitive is Search with query and every line lowercased before
// comparison. The returned lines keep their original casing.
//
//	SearchCaseInsensitive("rUsT", "Rust:\nSafe, fast, productive.\nPick three.\nRust all the way.")
//	// ["Rust:", "Rust all the way."]
func SearchCaseInsensitive(query, corpus string) []string {
	folded := matcher.Fold(query)
	return filter(corpus, func(line string) bool { return matcher.ContainsFold(line, folded) })
}

// Find dispatches to Search or SearchCaseInsensitive.
func Find(mode model.MatchMode, query, corpus string) []string {
	switch mode {
	case model.CaseInsensitive:
		return SearchCaseInsensitive(query, corpus)
	default:
		return Search(query, corpus)
	}
}

// Locate reports the same lines as Find, as spans into corpus.
func Locate(mode model.MatchMode, query, corpus string) []Span {
	match := matcher.For(mode, query)
	spans := make([]Span, 0)
	offset, lineN := 0, 1
	for raw := range strings.Lines(corpus) {
		line := trimTerminator(raw)
		if match(line) {
			spans = append(spans, Span{Line: lineN, Start: offset, End: offset + len(line)})
		}
		offset += len(raw)
		lineN++
	}
	return spans
}

// Matches is Locate with every span resolved to its line text.
func Matches(mode model.MatchMode, query, corpus string) []model.Match {
	spans := Locate(mode, query, corpus)
	matches := make([]model.Match, 0, len(spans))
	for _, sp := range spans {
		matches = append(matches, model.Match{Line: sp.Line, Text: sp.Text(corpus)})
	}
	return matches
}

func filter(corpus string, match func(string) bool) []string {
	result := make([]string, 0)
	for line := range strings.Lines(corpus) {
		line = trimTerminator(line)
		if match(line) {
			result = append(result, line)
		}
	}
	return result
}

// "\r" без последующего "\n" остается частью строки
func trimTerminator(line string) string {
	if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
		return strings.TrimSuffix(trimmed, "\r")
	}
	return line
}
