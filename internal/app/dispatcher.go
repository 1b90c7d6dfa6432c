package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"snipman/internal/input"
	"snipman/internal/input/types"
	"snipman/internal/state"
)

// Transition interprets a key in a mode
type Transition func(mode types.Mode, msg tea.KeyMsg) (types.Mode, types.Effect)

// Dispatcher applies decoded keys to the application state on the consumer side
// of the event loop.
type Dispatcher struct {
	state      *state.AppState
	executor   *Executor
	transition Transition
	log        logr.Logger
}

// NewDispatcher creates a dispatcher driving state through transition
func NewDispatcher(appState *state.AppState, executor *Executor, transition Transition, log logr.Logger) *Dispatcher {
	return &Dispatcher{
		state:      appState,
		executor:   executor,
		transition: transition,
		log:        log.WithName("dispatch"),
	}
}

// Dispatch handles one key and reports whether the application should quit
func (d *Dispatcher) Dispatch(ctx context.Context, msg tea.KeyMsg) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	mode := d.state.Mode
	next, effect := d.transition(mode, msg)
	d.log.V(1).Info("key", "key", msg.String(),
		"mode", input.ModeName(mode), "next", input.ModeName(next), "effect", effect)

	// a fresh key clears the previous status, except while typing a query
	if effect != types.EffectEditBuffer && effect != types.EffectNone {
		d.state.StatusMessage = ""
	}

	var err error
	switch effect {
	case types.EffectQuit:
		d.state.Mode = next
		return true, nil
	case types.EffectEnterSearch:
		d.state.EnterSearch()
	case types.EffectEditBuffer:
		d.state.UpdateSearch(msg)
	case types.EffectCommitSearch:
		err = d.executor.ExecuteSearch()
	case types.EffectCancelSearch:
		d.state.CancelSearch()
	case types.EffectSelectNext:
		d.state.SelectNext()
	case types.EffectSelectPrev:
		d.state.SelectPrev()
	case types.EffectDelete:
		err = d.executor.ExecuteDelete()
	case types.EffectCopy:
		err = d.executor.ExecuteCopy()
	case types.EffectHelp:
		err = d.executor.ExecuteHelp()
	}
	d.state.Mode = next

	if err != nil {
		return false, fmt.Errorf("%s: %w", effect, err)
	}
	return false, nil
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("no clipboard utility available")

// WriteAll copies text to the clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := clipboard.WriteAll(strings.TrimRight(text, "\n")); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
