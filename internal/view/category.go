package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snipman/internal/domain"
)

// CategoryRenderer handles rendering of the category panel entries
type CategoryRenderer struct {
	styles *Styles
}

// NewCategoryRenderer creates a new category renderer
func NewCategoryRenderer(styles *Styles) *CategoryRenderer {
	return &CategoryRenderer{
		styles: styles,
	}
}

// RenderCategory renders a category name with its snippet count. The
// category owning the selected snippet gets a background.
func (c *CategoryRenderer) RenderCategory(category domain.Category, isActive bool, width int) string {
	count := fmt.Sprintf(" (%d)", len(category.Positions))
	line := Truncate(category.Name, width-lipgloss.Width(count)) + count

	if isActive {
		if lineLen := lipgloss.Width(line); lineLen < width {
			line += strings.Repeat(" ", width-lineLen)
		}
		return c.styles.SelectionBg.Render(line)
	}

	if len(category.Positions) == 0 {
		return c.styles.Dim.Render(line)
	}
	return line
}
