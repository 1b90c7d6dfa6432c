package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"snipman/internal/input/modes"
	"snipman/internal/input/types"
)

// Machine maps (mode, key) pairs to (next mode, effect). It holds no mode of
// its own; the current mode lives in the application state.
type Machine struct {
	modes map[types.Mode]types.ModeHandler
}

// New creates a machine with the normal and search modes registered
func New(keys types.KeyMap) *Machine {
	m := &Machine{
		modes: make(map[types.Mode]types.ModeHandler),
	}

	m.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	m.modes[types.ModeSearching] = modes.NewSearchMode(keys)

	return m
}

// Transition interprets msg in mode. Unknown modes keep their mode and do nothing.
func (m *Machine) Transition(mode types.Mode, msg tea.KeyMsg) (types.Mode, types.Effect) {
	handler := m.modes[mode]
	if handler == nil {
		return mode, types.EffectNone
	}
	return handler.HandleKey(msg)
}

// ModeName returns the display name of a mode
func (m *Machine) ModeName(mode types.Mode) string {
	if handler := m.modes[mode]; handler != nil {
		return handler.Name()
	}
	return mode.String()
}

var defaultMachine = New(types.Keys)

// Transition interprets msg in mode with the default key map
func Transition(mode types.Mode, msg tea.KeyMsg) (types.Mode, types.Effect) {
	return defaultMachine.Transition(mode, msg)
}

// ModeName returns the display name of mode in the default machine
func ModeName(mode types.Mode) string {
	return defaultMachine.ModeName(mode)
}
