package view

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Wrap breaks text into lines no wider than width cells. Words are kept
// whole where possible; longer words are split. Empty text has no lines.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width <= 0 {
		return []string{text}
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// Truncate cuts s to at most width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// SearchScroll returns the first visible rune of a single-line field of the
// given width so that the cursor stays inside it.
func SearchScroll(cursor, width int) int {
	if width <= 0 || cursor < width {
		return 0
	}
	return cursor - width + 1
}
