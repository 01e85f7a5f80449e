// Package matcher checks a single line against the query - exact substring, optionally case-folded
package matcher

import (
	"strings"

	"github.com/UnendingLoop/minigrep/internal/model"
)

// Fold maps s to the common case used for case-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(s)
}

func Contains(line, query string) bool {
	return strings.Contains(line, query)
}

// ContainsFold expects foldedQuery to be already passed through Fold,
// so the query is folded once per search and not once per line.
func ContainsFold(line, foldedQuery string) bool {
	return strings.Contains(Fold(line), foldedQuery)
}

// For returns the predicate for mode with the query prepared for it.
func For(mode model.MatchMode, query string) func(line string) bool {
	switch mode {
	case model.CaseInsensitive: // -i / IGNORE_CASE
		folded := Fold(query)
		return func(line string) bool { return ContainsFold(line, folded) }
	default:
		return func(line string) bool { return Contains(line, query) }
	}
}

func FindMatch(mode model.MatchMode, query, line string) bool {
	return For(mode, query)(line)
}
