package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"snipman/internal/input/types"
)

// SearchMode forwards keys to the search buffer until the query is applied
// or discarded.
type SearchMode struct {
	keys types.KeyMap
}

func NewSearchMode(keys types.KeyMap) *SearchMode {
	return &SearchMode{keys: keys}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg) (types.Mode, types.Effect) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		return types.ModeSearching, types.EffectQuit
	case key.Matches(msg, m.keys.Submit):
		return types.ModeNormal, types.EffectCommitSearch
	case key.Matches(msg, m.keys.Cancel):
		return types.ModeNormal, types.EffectCancelSearch
	default:
		// Everything else edits the buffer
		return types.ModeSearching, types.EffectEditBuffer
	}
}
