package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/muesli/cancelreader"
)

const (
	keyBufferSize = 128

	// maxPending bounds an unterminated control sequence carried between reads
	maxPending = 32
)

// Reader decodes key presses from a terminal input in the background and
// hands them out through Poll. It can be paused so another program (the
// help pager) can read the same input.
type Reader struct {
	in   io.Reader
	keys chan tea.KeyMsg
	errs chan error
	log  logr.Logger

	mu      sync.Mutex
	cr      cancelreader.CancelReader
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewReader creates a reader; call Start to begin reading
func NewReader(in io.Reader, log logr.Logger) *Reader {
	return &Reader{
		in:   in,
		keys: make(chan tea.KeyMsg, keyBufferSize),
		errs: make(chan error, 1),
		log:  log,
	}
}

// Start begins reading input. Starting a running reader is a no-op.
func (r *Reader) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	cr, err := cancelreader.NewReader(r.in)
	if err != nil {
		return fmt.Errorf("failed to open input reader: %w", err)
	}
	r.cr = cr
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.running = true

	go r.readLoop(cr, r.stop, r.done)
	return nil
}

func (r *Reader) readLoop(cr cancelreader.CancelReader, stop, done chan struct{}) {
	defer close(done)

	buf := make([]byte, 256)
	var pending []byte
	for {
		n, err := cr.Read(buf)
		if n > 0 {
			keys, rest := decodeKeys(append(pending, buf[:n]...))
			pending = append([]byte(nil), rest...)
			if len(pending) > maxPending {
				r.log.V(1).Info("dropping unterminated control sequence", "bytes", len(pending))
				pending = nil
			}
			for _, msg := range keys {
				select {
				case r.keys <- msg:
				case <-stop:
					return
				}
			}
		}
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return
			}
			select {
			case r.errs <- fmt.Errorf("failed to read input: %w", err):
			default:
			}
			return
		}
	}
}

// Pause stops reading without discarding keys already decoded
func (r *Reader) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	r.running = false

	close(r.stop)
	if !r.cr.Cancel() {
		r.log.V(1).Info("input reader could not be cancelled")
	}
	<-r.done
	return r.cr.Close()
}

// Close stops reading for good
func (r *Reader) Close() error {
	return r.Pause()
}

// Poll waits up to timeout for the next key
func (r *Reader) Poll(ctx context.Context, timeout time.Duration) (tea.KeyMsg, bool, error) {
	select {
	case msg := <-r.keys:
		return msg, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-r.keys:
		return msg, true, nil
	case err := <-r.errs:
		return tea.KeyMsg{}, false, err
	case <-timer.C:
		return tea.KeyMsg{}, false, nil
	case <-ctx.Done():
		return tea.KeyMsg{}, false, ctx.Err()
	}
}
