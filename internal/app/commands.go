package app

import (
	"fmt"

	"github.com/go-logr/logr"

	"snipman/internal/domain"
	"snipman/internal/eventbus"
	"snipman/internal/state"
)

// Command represents an executable action on the application state
type Command interface {
	Execute() error
}

// Clipboard receives copied snippet commands
type Clipboard interface {
	WriteAll(text string) error
}

// HelpViewer shows the help screen
type HelpViewer interface {
	ShowHelp() error
}

// CommandContext provides context for command execution
type CommandContext struct {
	State     *state.AppState
	Bus       eventbus.EventBus
	Clipboard Clipboard
	Help      HelpViewer
	Log       logr.Logger

	version uint64 // bumped on every snippet list change
}

// publishChange announces the current snippet list for persistence
func (c *CommandContext) publishChange() {
	if c.Bus == nil {
		return
	}
	c.version++
	c.Bus.Publish(eventbus.SnippetsChangedEvent{
		Version:  c.version,
		Snippets: c.State.Snippets(),
	})
}

// AddCommand appends a snippet
type AddCommand struct {
	ctx     *CommandContext
	snippet domain.Snippet
}

// NewAddCommand creates a new add command
func NewAddCommand(ctx *CommandContext, snippet domain.Snippet) *AddCommand {
	return &AddCommand{
		ctx:     ctx,
		snippet: snippet,
	}
}

// Execute performs the add operation
func (c *AddCommand) Execute() error {
	c.ctx.State.AddSnippet(c.snippet)
	c.ctx.Log.V(1).Info("snippet added", "index", c.ctx.State.Len()-1, "command", c.snippet.Command)
	c.ctx.publishChange()
	return nil
}

// DeleteCommand removes the selected snippet
type DeleteCommand struct {
	ctx *CommandContext
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(ctx *CommandContext) *DeleteCommand {
	return &DeleteCommand{ctx: ctx}
}

// Execute removes the snippet under the selection, if any
func (c *DeleteCommand) Execute() error {
	pos, ok := c.ctx.State.SelectedPosition()
	if !ok {
		c.ctx.State.StatusMessage = "Nothing to delete"
		return nil
	}

	removed, err := c.ctx.State.RemoveSnippet(pos)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}

	c.ctx.State.StatusMessage = fmt.Sprintf("Deleted %q", removed.Command)
	c.ctx.Log.Info("snippet removed", "index", pos, "command", removed.Command)
	c.ctx.publishChange()
	return nil
}

// CopyCommand copies the selected snippet's command to the clipboard
type CopyCommand struct {
	ctx *CommandContext
}

// NewCopyCommand creates a new copy command
func NewCopyCommand(ctx *CommandContext) *CopyCommand {
	return &CopyCommand{ctx: ctx}
}

// Execute performs the copy. Clipboard failures are reported in the status
// line, not returned.
func (c *CopyCommand) Execute() error {
	pos, ok := c.ctx.State.SelectedPosition()
	if !ok {
		c.ctx.State.StatusMessage = "Nothing to copy"
		return nil
	}
	snippet, err := c.ctx.State.Snippet(pos)
	if err != nil {
		return fmt.Errorf("copy snippet: %w", err)
	}

	if c.ctx.Clipboard == nil {
		c.ctx.State.StatusMessage = "Clipboard unavailable"
		return nil
	}
	if err := c.ctx.Clipboard.WriteAll(snippet.Command); err != nil {
		c.ctx.Log.Error(err, "clipboard write failed")
		c.ctx.State.StatusMessage = fmt.Sprintf("Error: copy failed: %v", err)
		return nil
	}
	c.ctx.State.StatusMessage = fmt.Sprintf("Copied %q", snippet.Command)
	return nil
}

// HelpCommand shows the help pager
type HelpCommand struct {
	ctx *CommandContext
}

// NewHelpCommand creates a new help command
func NewHelpCommand(ctx *CommandContext) *HelpCommand {
	return &HelpCommand{ctx: ctx}
}

// Execute shows help. Pager failures are reported in the status line.
func (c *HelpCommand) Execute() error {
	if c.ctx.Help == nil {
		return nil
	}
	if err := c.ctx.Help.ShowHelp(); err != nil {
		c.ctx.Log.Error(err, "help pager failed")
		c.ctx.State.StatusMessage = fmt.Sprintf("Error: %v", err)
	}
	return nil
}

// SearchCommand commits the search buffer as the active filter
type SearchCommand struct {
	ctx *CommandContext
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext) *SearchCommand {
	return &SearchCommand{ctx: ctx}
}

// Execute commits the search and announces the number of matches on the bus
func (c *SearchCommand) Execute() error {
	c.ctx.State.CommitSearch()
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.SearchAppliedEvent{
			Query:   c.ctx.State.Query,
			Matches: len(c.ctx.State.Visible()),
		})
	}
	return nil
}
