package view

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Filter      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Command     lipgloss.Style
	Description lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Cursor      lipgloss.Style
	Scroll      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Command:     lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// ActivePanel returns the panel style used for the focused panel
func (s *Styles) ActivePanel() lipgloss.Style {
	return s.Panel.BorderForeground(lipgloss.Color("99"))
}
