package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"snipman/internal/input/types"
	"snipman/internal/state"
)

const (
	barHeight    = 3 // bordered single line
	searchHeight = 3
	snippetShare = 75 // percent of the width given to the snippet panel

	minWidth  = 24
	minHeight = 10
)

// Renderer turns a state snapshot into a full terminal frame. It never
// mutates state.
type Renderer struct {
	styles         *Styles
	snippetRender  *SnippetRenderer
	categoryRender *CategoryRenderer
	help           help.Model
	keys           types.KeyMap
}

// NewRenderer creates a new renderer
func NewRenderer(keys types.KeyMap) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		snippetRender:  NewSnippetRenderer(styles),
		categoryRender: NewCategoryRenderer(styles),
		help:           help.New(),
		keys:           keys,
	}
}

func snippetPanelWidth(totalWidth int) int {
	return totalWidth * snippetShare / 100
}

// DescriptionWidth returns the number of cells available to a snippet
// description line for a terminal of the given width.
func DescriptionWidth(totalWidth int) int {
	if totalWidth < minWidth {
		totalWidth = minWidth
	}
	// panel border and selection marker
	w := snippetPanelWidth(totalWidth) - 2 - 2
	if w < 1 {
		return 1
	}
	return w
}

// Render produces the complete frame
func (r *Renderer) Render(snap state.Snapshot, width, height int) string {
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}

	leftWidth := snippetPanelWidth(width)
	middleHeight := height - barHeight - searchHeight

	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		r.renderSnippets(snap, leftWidth, middleHeight),
		r.renderCategories(snap, width-leftWidth, middleHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		r.renderCommandBar(snap, width),
		middle,
		r.renderSearch(snap, width),
	)
}

// renderCommandBar renders the title, the key bindings of the current mode
// and, right-aligned, the status message and active filter.
func (r *Renderer) renderCommandBar(snap state.Snapshot, width int) string {
	inner := width - 2
	logo := r.styles.Title.Render("snipman")

	var rightParts []string
	if snap.Status != "" {
		rightParts = append(rightParts, r.styles.Status.Render(snap.Status))
	}
	if snap.Query != "" && snap.Mode == types.ModeNormal {
		rightParts = append(rightParts, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", snap.Query)))
	}
	rightContent := strings.Join(rightParts, "  ")

	bindings := r.keys.ShortHelp()
	if snap.Mode == types.ModeSearching {
		bindings = r.keys.SearchHelp()
	}
	r.help.Width = inner - lipgloss.Width(logo) - lipgloss.Width(rightContent) - 4
	commands := r.help.ShortHelpView(bindings)

	left := logo + "  " + commands
	paddingWidth := inner - lipgloss.Width(left) - lipgloss.Width(rightContent)
	var line string
	if paddingWidth > 0 {
		line = left + strings.Repeat(" ", paddingWidth) + rightContent
	} else {
		line = truncate.String(left, uint(inner))
	}

	return r.styles.Panel.Width(inner).MaxHeight(barHeight).Render(line)
}

func (r *Renderer) renderSnippets(snap state.Snapshot, width, height int) string {
	innerWidth := width - 2
	available := height - 3 // border and title

	title := fmt.Sprintf("Snippets %d/%d", len(snap.Visible), len(snap.Snippets))

	var lines []string
	switch {
	case len(snap.Snippets) == 0:
		lines = []string{r.styles.Dim.Render(Truncate("No snippets yet. Add one with: snipman add", innerWidth))}
	case len(snap.Visible) == 0:
		lines = []string{r.styles.Dim.Render(Truncate("No snippets match the search", innerWidth))}
	default:
		blocks := make([][]string, len(snap.Visible))
		for i, pos := range snap.Visible {
			blocks[i] = r.snippetRender.RenderSnippet(snap.Snippets[pos], i == snap.Selected, snap.MatchedIndexes(i), innerWidth)
		}
		lines = windowAround(blocks, snap.Selected, available)
	}

	return r.panel(r.styles.Panel, title, lines, width, height)
}

// windowAround flattens blocks into at most limit lines, starting late
// enough that the selected block is fully shown when it fits.
func windowAround(blocks [][]string, selected, limit int) []string {
	start := 0
	for start < selected {
		n := 0
		for _, b := range blocks[start : selected+1] {
			n += len(b)
		}
		if n <= limit {
			break
		}
		start++
	}

	var lines []string
	for _, b := range blocks[start:] {
		for _, line := range b {
			if len(lines) == limit {
				return lines
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func (r *Renderer) renderCategories(snap state.Snapshot, width, height int) string {
	innerWidth := width - 2

	selectedPos := -1
	if snap.Selected >= 0 && snap.Selected < len(snap.Visible) {
		selectedPos = snap.Visible[snap.Selected]
	}

	var lines []string
	for _, c := range snap.Categories {
		active := false
		for _, p := range c.Positions {
			if p == selectedPos {
				active = true
				break
			}
		}
		lines = append(lines, r.categoryRender.RenderCategory(c, active, innerWidth))
	}

	return r.panel(r.styles.Panel, "Categories", lines, width, height)
}

func (r *Renderer) panel(style lipgloss.Style, title string, lines []string, width, height int) string {
	innerWidth := width - 2
	innerHeight := height - 2

	body := append([]string{r.styles.PanelTitle.Render(Truncate(title, innerWidth))}, lines...)
	if len(body) > innerHeight {
		body = body[:innerHeight]
	}
	return style.Width(innerWidth).Height(innerHeight).MaxHeight(height).Render(strings.Join(body, "\n"))
}

// renderSearch renders the single-line search field, scrolled horizontally
// so the cursor stays visible.
func (r *Renderer) renderSearch(snap state.Snapshot, width int) string {
	const label = "Search: "
	inner := width - 2
	fieldWidth := inner - len(label)

	style := r.styles.Panel
	searching := snap.Mode == types.ModeSearching
	if searching {
		style = r.styles.ActivePanel()
	}

	var field string
	switch {
	case searching:
		field = r.renderField([]rune(snap.SearchValue), snap.SearchCursor, fieldWidth)
	case snap.SearchValue == "":
		field = r.styles.Dim.Render(Truncate("press s to search", fieldWidth))
	default:
		value := []rune(snap.SearchValue)
		if len(value) > fieldWidth {
			value = value[:fieldWidth]
		}
		field = string(value)
	}

	return style.Width(inner).MaxHeight(searchHeight).Render(r.styles.PanelTitle.Render(label) + field)
}

func (r *Renderer) renderField(value []rune, cursor, width int) string {
	if width <= 0 {
		return ""
	}
	if cursor > len(value) {
		cursor = len(value)
	}

	// one extra cell for the cursor after the last rune
	scroll := SearchScroll(cursor, width)
	end := scroll + width
	if end > len(value) {
		end = len(value)
	}

	var b strings.Builder
	for i := scroll; i < end; i++ {
		if i == cursor {
			b.WriteString(r.styles.Cursor.Render(string(value[i])))
			continue
		}
		b.WriteRune(value[i])
	}
	if cursor == end && cursor-scroll < width {
		b.WriteString(r.styles.Cursor.Render(" "))
	}
	return b.String()
}
