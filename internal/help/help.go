package help

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"snipman/internal/input/types"
)

type section struct {
	title    string
	bindings []key.Binding
}

// Content renders the help text shown in the pager
func Content(keys types.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sections := []section{
		{"Navigation", []key.Binding{keys.Up, keys.Down}},
		{"Snippets", []key.Binding{keys.Copy, keys.Delete}},
		{"Search", []key.Binding{keys.Search, keys.Submit, keys.Cancel}},
		{"Other", []key.Binding{keys.Help, keys.Quit, keys.Abort}},
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("snipman Help"))
	help.WriteString("\n")

	for _, s := range sections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	// Command line section
	help.WriteString(sectionStyle.Render("Command line"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("snipman add [--category c] <command> <description>"), descStyle.Render("Add a snippet")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("snipman list [--category c]"), descStyle.Render("List snippets")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("snipman rm <index>"), descStyle.Render("Remove a snippet")))

	footerStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(footerStyle.Render("  Press q to return"))

	return help.String()
}

// Terminal is the part of the terminal the pager borrows
type Terminal interface {
	Suspend() error
	Resume() error
}

// Pager shows text in ov while the TUI is suspended
type Pager struct {
	term Terminal
	keys types.KeyMap
}

// NewPager creates a pager over term
func NewPager(term Terminal, keys types.KeyMap) *Pager {
	return &Pager{
		term: term,
		keys: keys,
	}
}

// ShowHelp shows the key binding help
func (p *Pager) ShowHelp() error {
	return p.Show(Content(p.keys))
}

// Show hands the terminal to ov until the user quits it
func (p *Pager) Show(content string) (err error) {
	if err := p.term.Suspend(); err != nil {
		return fmt.Errorf("failed to release terminal: %w", err)
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		if rerr := p.term.Resume(); rerr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", rerr)
		}
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
