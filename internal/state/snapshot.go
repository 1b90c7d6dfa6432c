package state

import (
	"snipman/internal/domain"
	"snipman/internal/input/types"
)

// Snapshot is a read-only copy of the state handed to renderers and
// persistence, so they never hold a reference into AppState.
type Snapshot struct {
	Snippets     []domain.Snippet
	Categories   []domain.Category
	Mode         types.Mode
	SearchValue  string
	SearchCursor int // rune offset of the cursor in SearchValue
	Query        string
	Visible      []int
	Matched      [][]int // per Visible entry, byte offsets into search.Text
	Selected     int     // index into Visible
	Status       string
}

// Snapshot copies the current state
func (s *AppState) Snapshot() Snapshot {
	return Snapshot{
		Snippets:     s.Snippets(),
		Categories:   s.Categories(),
		Mode:         s.Mode,
		SearchValue:  s.Search.Value(),
		SearchCursor: s.Search.Position(),
		Query:        s.Query,
		Visible:      s.Visible(),
		Matched:      s.matchedCopy(),
		Selected:     s.selected,
		Status:       s.StatusMessage,
	}
}

func (s *AppState) matchedCopy() [][]int {
	result := make([][]int, len(s.matched))
	for i, indexes := range s.matched {
		if indexes != nil {
			result[i] = append([]int(nil), indexes...)
		}
	}
	return result
}

// MatchedIndexes returns the query hits for the i-th visible snippet
func (s Snapshot) MatchedIndexes(i int) []int {
	if i < 0 || i >= len(s.Matched) {
		return nil
	}
	return s.Matched[i]
}

// SelectedSnippet returns the snippet under the selection, if any
func (s Snapshot) SelectedSnippet() (domain.Snippet, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Visible) {
		return domain.Snippet{}, false
	}
	return s.Snippets[s.Visible[s.Selected]], true
}
