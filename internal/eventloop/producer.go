package eventloop

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
)

// DefaultInterval is the tick period used when none is configured
const DefaultInterval = 200 * time.Millisecond

// Source delivers decoded key presses. Poll waits at most timeout for one
// key; ok is false when none arrived in time.
type Source interface {
	Poll(ctx context.Context, timeout time.Duration) (msg tea.KeyMsg, ok bool, err error)
}

// Producer polls a Source and emits Input and Tick events
type Producer struct {
	source   Source
	interval time.Duration
	now      func() time.Time
	log      logr.Logger
}

// ProducerOption configures a Producer
type ProducerOption func(*Producer)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) ProducerOption {
	return func(p *Producer) {
		p.now = now
	}
}

// WithLogger sets the producer logger
func WithLogger(log logr.Logger) ProducerOption {
	return func(p *Producer) {
		p.log = log
	}
}

// NewProducer creates a producer. A non-positive interval falls back to
// DefaultInterval.
func NewProducer(source Source, interval time.Duration, opts ...ProducerOption) *Producer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Producer{
		source:   source,
		interval: interval,
		now:      time.Now,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled or the source fails. A poll error is
// forwarded as a Failure event before Run returns it. Sends block, so the
// consumer sees every input in arrival order.
func (p *Producer) Run(ctx context.Context, out chan<- Event) error {
	lastTick := p.now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		timeout := p.interval - p.now().Sub(lastTick)
		if timeout < 0 {
			timeout = 0
		}

		msg, ok, err := p.source.Poll(ctx, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Error(err, "input source failed")
			_ = p.send(ctx, out, Event{Kind: KindFailure, Err: err, At: p.now()})
			return err
		}

		if ok {
			if err := p.send(ctx, out, Event{Kind: KindInput, Key: msg, At: p.now()}); err != nil {
				return err
			}
		}

		if now := p.now(); now.Sub(lastTick) >= p.interval {
			if err := p.send(ctx, out, Event{Kind: KindTick, At: now}); err != nil {
				return err
			}
			lastTick = now
		}
	}
}

func (p *Producer) send(ctx context.Context, out chan<- Event, ev Event) error {
	select {
	case out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
