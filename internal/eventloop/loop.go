package eventloop

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
)

// ErrSourceClosed is returned when the event channel closes under the loop
var ErrSourceClosed = errors.New("event source closed")

// Dispatcher applies one key press to the application state
type Dispatcher interface {
	Dispatch(ctx context.Context, msg tea.KeyMsg) (quit bool, err error)
}

// Redrawer renders the current state
type Redrawer interface {
	Redraw() error
}

// Loop is the consumer side: it is the only code that touches application
// state while the TUI runs.
type Loop struct {
	dispatcher Dispatcher
	redrawer   Redrawer
	log        logr.Logger
}

// NewLoop creates a consumer loop
func NewLoop(dispatcher Dispatcher, redrawer Redrawer, log logr.Logger) *Loop {
	return &Loop{
		dispatcher: dispatcher,
		redrawer:   redrawer,
		log:        log,
	}
}

// Run draws once, then handles events until a quit key, a failure, a closed
// channel or cancellation. Every handled event is followed by exactly one
// redraw.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	if err := l.redrawer.Redraw(); err != nil {
		return fmt.Errorf("initial draw: %w", err)
	}

	for {
		var ev Event
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok = <-events:
		}
		if !ok {
			return ErrSourceClosed
		}

		switch ev.Kind {
		case KindInput:
			quit, err := l.dispatcher.Dispatch(ctx, ev.Key)
			if err != nil {
				return err
			}
			if quit {
				l.log.V(1).Info("quit requested", "key", ev.Key.String())
				return nil
			}
		case KindTick:
		case KindFailure:
			return fmt.Errorf("event source: %w", ev.Err)
		default:
			l.log.Info("ignoring unknown event", "kind", ev.Kind.String())
		}

		if err := l.redrawer.Redraw(); err != nil {
			return fmt.Errorf("redraw: %w", err)
		}
	}
}
