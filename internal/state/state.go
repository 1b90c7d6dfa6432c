package state

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"snipman/internal/categories"
	"snipman/internal/domain"
	"snipman/internal/input/types"
	"snipman/internal/search"
)

// AppState contains all the application state. It is owned by the main
// goroutine; nothing else mutates it.
type AppState struct {
	// Snippet data
	snippets   []domain.Snippet
	categories *categories.Index

	// Input state
	Mode         types.Mode
	Search       textinput.Model // search buffer, focused while searching
	Query        string          // last committed search
	searchOrigin string          // buffer value when searching was entered

	// Filter and selection state
	visible  []int   // snippet positions matching the current buffer
	matched  [][]int // per visible entry, byte offsets hit by the query
	selected int     // index into visible

	// UI state
	StatusMessage string
}

// NewAppState creates an empty application state in normal mode
func NewAppState() *AppState {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter"

	s := &AppState{
		snippets:   make([]domain.Snippet, 0),
		categories: categories.New(),
		Mode:       types.ModeNormal,
		Search:     ti,
	}
	s.refilter()
	return s
}

// Snippet operations

// AddSnippet appends a snippet and records its position in its category
func (s *AppState) AddSnippet(snippet domain.Snippet) {
	s.categories.Append(snippet.CategoryName(), len(s.snippets))
	s.snippets = append(s.snippets, snippet.Clone())
	s.refilter()
}

// RemoveSnippet removes the snippet at idx and shifts every later position
// down by one. Nothing is modified when idx is out of range.
func (s *AppState) RemoveSnippet(idx int) (domain.Snippet, error) {
	if err := s.checkIndex(idx); err != nil {
		return domain.Snippet{}, err
	}
	if err := s.categories.Release(idx); err != nil {
		return domain.Snippet{}, err
	}

	removed := s.snippets[idx]
	s.snippets = append(s.snippets[:idx], s.snippets[idx+1:]...)
	s.refilter()
	return removed, nil
}

// ReplaceSnippet swaps the snippet at idx for another, moving its position
// to the new snippet's category when that differs.
func (s *AppState) ReplaceSnippet(idx int, snippet domain.Snippet) (domain.Snippet, error) {
	if err := s.checkIndex(idx); err != nil {
		return domain.Snippet{}, err
	}
	if err := s.categories.Move(idx, snippet.CategoryName()); err != nil {
		return domain.Snippet{}, err
	}

	old := s.snippets[idx]
	s.snippets[idx] = snippet.Clone()
	s.refilter()
	return old, nil
}

func (s *AppState) checkIndex(idx int) error {
	if idx < 0 || idx >= len(s.snippets) {
		return fmt.Errorf("snippet %d of %d: %w", idx, len(s.snippets), domain.ErrOutOfRange)
	}
	return nil
}

// Snippet returns the snippet at idx
func (s *AppState) Snippet(idx int) (domain.Snippet, error) {
	if err := s.checkIndex(idx); err != nil {
		return domain.Snippet{}, err
	}
	return s.snippets[idx].Clone(), nil
}

// Snippets returns a copy of the snippet list
func (s *AppState) Snippets() []domain.Snippet {
	result := make([]domain.Snippet, len(s.snippets))
	for i, snippet := range s.snippets {
		result[i] = snippet.Clone()
	}
	return result
}

// Categories returns a copy of the category index entries
func (s *AppState) Categories() []domain.Category {
	return s.categories.Entries()
}

// Len returns the number of snippets
func (s *AppState) Len() int {
	return len(s.snippets)
}

// Validate checks the category index against the snippet list
func (s *AppState) Validate() error {
	if err := s.categories.Validate(len(s.snippets)); err != nil {
		return err
	}
	names := s.categories.Names()
	for i, snippet := range s.snippets {
		if name := names[s.categories.Owner(i)]; name != snippet.CategoryName() {
			return fmt.Errorf("snippet %d has category %q but is indexed under %q", i, snippet.CategoryName(), name)
		}
	}
	return nil
}

// Search operations

// EnterSearch focuses the search buffer and remembers its value so that a
// cancel can restore it.
func (s *AppState) EnterSearch() {
	s.Mode = types.ModeSearching
	s.searchOrigin = s.Search.Value()
	s.Search.Focus()
	s.Search.CursorEnd()
}

// UpdateSearch forwards a key to the search buffer and re-applies the filter
func (s *AppState) UpdateSearch(msg tea.KeyMsg) {
	s.Search, _ = s.Search.Update(msg)
	s.refilter()
}

// CommitSearch keeps the buffer as the active filter and leaves search mode
func (s *AppState) CommitSearch() {
	s.Mode = types.ModeNormal
	s.Query = s.Search.Value()
	s.Search.Blur()
}

// CancelSearch restores the buffer to its value on entry and leaves search mode
func (s *AppState) CancelSearch() {
	s.Mode = types.ModeNormal
	s.Search.SetValue(s.searchOrigin)
	s.Search.CursorEnd()
	s.Search.Blur()
	s.refilter()
}

func (s *AppState) refilter() {
	matches := search.Filter(s.snippets, s.Search.Value())
	s.visible = search.Positions(matches)
	s.matched = make([][]int, len(matches))
	for i, m := range matches {
		s.matched[i] = m.MatchedIndexes
	}
	s.clampSelection()
}

// Selection operations

// SelectNext moves the selection down the visible list
func (s *AppState) SelectNext() {
	s.selected++
	s.clampSelection()
}

// SelectPrev moves the selection up the visible list
func (s *AppState) SelectPrev() {
	s.selected--
	s.clampSelection()
}

func (s *AppState) clampSelection() {
	if s.selected >= len(s.visible) {
		s.selected = len(s.visible) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// SelectedPosition returns the snippet position under the selection
func (s *AppState) SelectedPosition() (int, bool) {
	if len(s.visible) == 0 {
		return 0, false
	}
	return s.visible[s.selected], true
}

// Visible returns the snippet positions that pass the current filter
func (s *AppState) Visible() []int {
	result := make([]int, len(s.visible))
	copy(result, s.visible)
	return result
}
