package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Screen writes full frames to a raw-mode terminal
type Screen struct {
	out  io.Writer
	last string
}

// NewScreen creates a screen writing to out
func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out}
}

// Draw replaces the screen contents with frame. A frame identical to the
// previous one is not written again.
func (s *Screen) Draw(frame string) error {
	if frame == s.last {
		return nil
	}

	var b strings.Builder
	b.WriteString(ansi.CursorHomePosition)
	b.WriteString(ansi.EraseEntireScreen)
	// raw mode disables the implicit carriage return
	b.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return err
	}
	s.last = frame
	return nil
}

// Invalidate forces the next Draw to write, e.g. after the screen was
// handed to another program.
func (s *Screen) Invalidate() {
	s.last = ""
}
