package app

import (
	"github.com/go-logr/logr"

	"snipman/internal/domain"
	"snipman/internal/eventbus"
	"snipman/internal/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor. bus, clipboard and help may be nil.
func NewExecutor(state *state.AppState, bus eventbus.EventBus, clipboard Clipboard, help HelpViewer, log logr.Logger) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:     state,
			Bus:       bus,
			Clipboard: clipboard,
			Help:      help,
			Log:       log,
		},
	}
}

// ExecuteAdd creates and executes an add command
func (e *Executor) ExecuteAdd(snippet domain.Snippet) error {
	return NewAddCommand(e.ctx, snippet).Execute()
}

// ExecuteDelete creates and executes a delete command
func (e *Executor) ExecuteDelete() error {
	return NewDeleteCommand(e.ctx).Execute()
}

// ExecuteCopy creates and executes a copy command
func (e *Executor) ExecuteCopy() error {
	return NewCopyCommand(e.ctx).Execute()
}

// ExecuteHelp creates and executes a help command
func (e *Executor) ExecuteHelp() error {
	return NewHelpCommand(e.ctx).Execute()
}

// ExecuteSearch creates and executes a search commit command
func (e *Executor) ExecuteSearch() error {
	return NewSearchCommand(e.ctx).Execute()
}
