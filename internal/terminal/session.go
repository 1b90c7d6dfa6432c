package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Session owns the raw-mode and alternate-screen state of the terminal.
// Close restores everything and is safe to call more than once.
type Session struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	active   bool
	closed   bool
}

// NewSession creates a session over the given input and output terminals
func NewSession(in, out *os.File) *Session {
	return &Session{in: in, out: out}
}

// Enter switches the terminal to raw mode and the alternate screen
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("terminal session already closed")
	}
	if s.active {
		return nil
	}

	state, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	s.oldState = state

	if _, err := io.WriteString(s.out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor); err != nil {
		_ = term.Restore(int(s.in.Fd()), state)
		return fmt.Errorf("failed to enter alternate screen: %w", err)
	}
	s.active = true
	return nil
}

// leave undoes Enter. The caller holds mu.
func (s *Session) leave() error {
	if !s.active {
		return nil
	}
	s.active = false

	_, writeErr := io.WriteString(s.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
	if err := term.Restore(int(s.in.Fd()), s.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	if writeErr != nil {
		return fmt.Errorf("failed to leave alternate screen: %w", writeErr)
	}
	return nil
}

// Suspend hands the terminal back temporarily, e.g. to a pager
func (s *Session) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leave()
}

// Resume re-enters raw mode after Suspend
func (s *Session) Resume() error {
	return s.Enter()
}

// Close restores the terminal for good
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.leave()
}

// Active reports whether the terminal is currently in raw mode
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Size returns the width and height of the output terminal
func (s *Session) Size() (int, int, error) {
	w, h, err := term.GetSize(int(s.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return w, h, nil
}
