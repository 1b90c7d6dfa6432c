package view

import (
	"strings"

	"snipman/internal/domain"
)

// SnippetRenderer handles rendering of snippet items
type SnippetRenderer struct {
	styles *Styles
}

// NewSnippetRenderer creates a new snippet renderer
func NewSnippetRenderer(styles *Styles) *SnippetRenderer {
	return &SnippetRenderer{
		styles: styles,
	}
}

// RenderSnippet renders one snippet as a bold command line followed by its
// wrapped description. matched holds the byte offsets of the query hits in
// search.Text of the snippet; hits inside the command are highlighted.
// Every returned line fits in width cells.
func (r *SnippetRenderer) RenderSnippet(snippet domain.Snippet, isSelected bool, matched []int, width int) []string {
	marker := "  "
	if isSelected {
		marker = "> "
	}
	textWidth := width - len(marker)

	command := Truncate(snippet.Command, textWidth)
	commandStyle := r.styles.Command
	descStyle := r.styles.Description
	if isSelected {
		commandStyle = commandStyle.Inherit(r.styles.SelectionBg)
		descStyle = descStyle.Inherit(r.styles.SelectionBg)
	}

	// a truncated command keeps a prefix of the original followed by the ellipsis
	kept := len(command)
	if command != snippet.Command {
		kept = len(strings.TrimSuffix(command, "…"))
	}

	var line strings.Builder
	line.WriteString(marker)
	highlight := r.styles.Highlight.Inherit(commandStyle)
	for _, seg := range splitMatched(command, matched, kept) {
		if seg.matched {
			line.WriteString(highlight.Render(seg.text))
		} else {
			line.WriteString(commandStyle.Render(seg.text))
		}
	}

	lines := []string{line.String()}
	for _, l := range Wrap(snippet.Description, textWidth) {
		lines = append(lines, "  "+descStyle.Render(l))
	}
	return lines
}

type segment struct {
	text    string
	matched bool
}

// splitMatched cuts text into runs of matched and unmatched runes. Offsets at
// or beyond limit are ignored.
func splitMatched(text string, matched []int, limit int) []segment {
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		if i >= 0 && i < limit {
			hits[i] = true
		}
	}

	var segments []segment
	start := 0
	for i := range text {
		if i == 0 {
			continue
		}
		if hits[i] != hits[start] {
			segments = append(segments, segment{text: text[start:i], matched: hits[start]})
			start = i
		}
	}
	if start < len(text) {
		segments = append(segments, segment{text: text[start:], matched: hits[start]})
	}
	return segments
}
