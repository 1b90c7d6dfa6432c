package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"snipman/internal/domain"
)

// Match is a snippet position that satisfied a query
type Match struct {
	Position       int
	MatchedIndexes []int // byte offsets into Text(snippet)
}

// snippetSource adapts a snippet list to fuzzy.Source
type snippetSource []domain.Snippet

func (s snippetSource) String(i int) string { return Text(s[i]) }
func (s snippetSource) Len() int            { return len(s) }

// Text returns the string a query is matched against: command, description
// and, when present, the category name.
func Text(s domain.Snippet) string {
	parts := []string{s.Command, s.Description}
	if s.HasCategory() {
		parts = append(parts, *s.Category)
	}
	return strings.Join(parts, " ")
}

// Filter returns the snippets matching query, best match first.
// A blank query matches everything in list order.
func Filter(snippets []domain.Snippet, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(snippets))
		for i := range snippets {
			matches[i] = Match{Position: i}
		}
		return matches
	}

	results := fuzzy.FindFrom(query, snippetSource(snippets))
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Position:       r.Index,
			MatchedIndexes: r.MatchedIndexes,
		}
	}
	return matches
}

// Positions extracts the snippet positions of matches, preserving their order
func Positions(matches []Match) []int {
	positions := make([]int, len(matches))
	for i, m := range matches {
		positions[i] = m.Position
	}
	return positions
}
