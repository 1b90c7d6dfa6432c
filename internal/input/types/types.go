package types

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearching
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// Effect is what the caller must do after a key was interpreted
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	EffectEnterSearch
	EffectCommitSearch
	EffectCancelSearch
	EffectEditBuffer
	EffectSelectNext
	EffectSelectPrev
	EffectDelete
	EffectCopy
	EffectHelp
)

var effectNames = map[Effect]string{
	EffectNone:         "none",
	EffectQuit:         "quit",
	EffectEnterSearch:  "enter-search",
	EffectCommitSearch: "commit-search",
	EffectCancelSearch: "cancel-search",
	EffectEditBuffer:   "edit-buffer",
	EffectSelectNext:   "select-next",
	EffectSelectPrev:   "select-prev",
	EffectDelete:       "delete",
	EffectCopy:         "copy",
	EffectHelp:         "help",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "unknown"
}

// ModeHandler interprets keys for a specific mode
type ModeHandler interface {
	// HandleKey returns the next mode and the effect of msg. It must not
	// have side effects.
	HandleKey(msg tea.KeyMsg) (Mode, Effect)

	// Name returns the mode name for display
	Name() string
}

// KeyMap holds the key bindings of both modes
type KeyMap struct {
	Quit   key.Binding
	Search key.Binding
	Down   key.Binding
	Up     key.Binding
	Delete key.Binding
	Copy   key.Binding
	Help   key.Binding

	Submit key.Binding
	Cancel key.Binding
	Abort  key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "Q"),
		key.WithHelp("q", "quit"),
	),
	Search: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "search"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "D"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "copy"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "h", "H"),
		key.WithHelp("?", "help"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "discard"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp returns the Normal mode command bar bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Up, k.Down, k.Copy, k.Delete, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by mode
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Up, k.Down, k.Copy, k.Delete, k.Help, k.Quit},
		{k.Submit, k.Cancel, k.Abort},
	}
}

// SearchHelp returns the Searching mode command bar bindings
func (k KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
