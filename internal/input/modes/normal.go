package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"snipman/internal/input/types"
)

// NormalMode interprets keys as commands
type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg) (types.Mode, types.Effect) {
	switch {
	case key.Matches(msg, m.keys.Abort), key.Matches(msg, m.keys.Quit):
		return types.ModeNormal, types.EffectQuit

	case key.Matches(msg, m.keys.Search):
		return types.ModeSearching, types.EffectEnterSearch

	case key.Matches(msg, m.keys.Down):
		return types.ModeNormal, types.EffectSelectNext

	case key.Matches(msg, m.keys.Up):
		return types.ModeNormal, types.EffectSelectPrev

	case key.Matches(msg, m.keys.Delete):
		return types.ModeNormal, types.EffectDelete

	case key.Matches(msg, m.keys.Copy):
		return types.ModeNormal, types.EffectCopy

	case key.Matches(msg, m.keys.Help):
		return types.ModeNormal, types.EffectHelp
	}

	// Unbound keys are no-ops in normal mode
	return types.ModeNormal, types.EffectNone
}
