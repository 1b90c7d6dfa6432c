package app

import (
	"time"

	"snipman/internal/state"
	"snipman/internal/view"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24

	// noticeTTL is how long a notice stays on the status line
	noticeTTL = 3 * time.Second
)

// Screen receives rendered frames
type Screen interface {
	Draw(frame string) error
}

// Sizer reports the terminal size in cells
type Sizer interface {
	Size() (int, int, error)
}

// Frame redraws the whole interface from a state snapshot. It never writes
// to the state: notices are laid over the snapshot for noticeTTL.
type Frame struct {
	state    *state.AppState
	renderer *view.Renderer
	screen   Screen
	sizer    Sizer
	notices  *Notices

	notice      Notice
	noticeUntil time.Time
	now         func() time.Time
}

// NewFrame creates a redrawer for the given screen. notices may be nil.
func NewFrame(appState *state.AppState, renderer *view.Renderer, screen Screen, sizer Sizer, notices *Notices) *Frame {
	return &Frame{
		state:    appState,
		renderer: renderer,
		screen:   screen,
		sizer:    sizer,
		notices:  notices,
		now:      time.Now,
	}
}

// Redraw renders the current state and draws it
func (f *Frame) Redraw() error {
	snap := f.state.Snapshot()
	f.applyNotice(&snap)

	width, height := fallbackWidth, fallbackHeight
	if f.sizer != nil {
		if w, h, err := f.sizer.Size(); err == nil && w > 0 && h > 0 {
			width, height = w, h
		}
	}
	return f.screen.Draw(f.renderer.Render(snap, width, height))
}

// applyNotice shows the current notice in the status line of snap. Errors
// replace the state's own status; other notices only fill an empty one.
func (f *Frame) applyNotice(snap *state.Snapshot) {
	if f.notices == nil {
		return
	}

	now := f.now()
	if notice, ok := f.notices.Drain(); ok {
		f.notice = notice
		f.noticeUntil = now.Add(noticeTTL)
	}
	if f.notice.Text == "" || !now.Before(f.noticeUntil) {
		return
	}
	if f.notice.Err || snap.Status == "" {
		snap.Status = f.notice.Text
	}
}
