package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
)

// Terminal bundles the session, input reader and screen of one TUI run
type Terminal struct {
	Session *Session
	Reader  *Reader
	Screen  *Screen
}

// Open enters raw mode and the alternate screen and starts reading input.
// The caller must Close the terminal on every exit path.
func Open(in, out *os.File, log logr.Logger) (*Terminal, error) {
	t := &Terminal{
		Session: NewSession(in, out),
		Reader:  NewReader(in, log),
		Screen:  NewScreen(out),
	}

	if err := t.Session.Enter(); err != nil {
		return nil, err
	}
	if err := t.Reader.Start(); err != nil {
		_ = t.Session.Close()
		return nil, err
	}
	return t, nil
}

// Close stops the reader and restores the terminal
func (t *Terminal) Close() error {
	return errors.Join(t.Reader.Close(), t.Session.Close())
}

// Suspend gives the terminal to another program until Resume
func (t *Terminal) Suspend() error {
	if err := t.Reader.Pause(); err != nil {
		return fmt.Errorf("failed to pause input: %w", err)
	}
	return t.Session.Suspend()
}

// Resume takes the terminal back after Suspend
func (t *Terminal) Resume() error {
	if err := t.Session.Resume(); err != nil {
		return err
	}
	t.Screen.Invalidate()
	return t.Reader.Start()
}

// Size returns the terminal width and height
func (t *Terminal) Size() (int, int, error) {
	return t.Session.Size()
}
