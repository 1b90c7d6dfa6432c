package eventloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// idleSource never produces keys; each poll consumes its whole timeout
type idleSource struct {
	clock *fakeClock
}

func (s *idleSource) Poll(_ context.Context, timeout time.Duration) (tea.KeyMsg, bool, error) {
	s.clock.Advance(timeout)
	return tea.KeyMsg{}, false, nil
}

// busySource produces a numbered key every step
type busySource struct {
	clock *fakeClock
	step  time.Duration
	n     int
}

func (s *busySource) Poll(_ context.Context, _ time.Duration) (tea.KeyMsg, bool, error) {
	s.clock.Advance(s.step)
	s.n++
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune(s.n)}}, true, nil
}

type failingSource struct {
	err error
}

func (s *failingSource) Poll(context.Context, time.Duration) (tea.KeyMsg, bool, error) {
	return tea.KeyMsg{}, false, s.err
}

func runProducer(t *testing.T, p *Producer) (<-chan Event, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event)
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, events)
	}()
	t.Cleanup(cancel)
	return events, cancel, done
}

func receive(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestIdleProducerTicksOncePerInterval(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()
	p := NewProducer(&idleSource{clock: clock}, 200*time.Millisecond, WithClock(clock.Now))

	events, cancel, done := runProducer(t, p)

	for i := 1; i <= 3; i++ {
		ev := receive(t, events)
		assert.Equal(t, KindTick, ev.Kind, "event %d", i)
		assert.Equal(t, time.Duration(i)*200*time.Millisecond, ev.At.Sub(start))
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestInputKeepsOrderAndTicksStillArrive(t *testing.T) {
	clock := newFakeClock()
	source := &busySource{clock: clock, step: 60 * time.Millisecond}
	p := NewProducer(source, 200*time.Millisecond, WithClock(clock.Now))

	events, _, _ := runProducer(t, p)

	var keys []rune
	var ticks []time.Time
	for len(ticks) < 4 {
		ev := receive(t, events)
		switch ev.Kind {
		case KindInput:
			keys = append(keys, ev.Key.Runes[0])
		case KindTick:
			ticks = append(ticks, ev.At)
		default:
			t.Fatalf("unexpected event %s", ev.Kind)
		}
	}

	for i, r := range keys {
		assert.Equal(t, rune(i+1), r)
	}
	for i := 1; i < len(ticks); i++ {
		assert.LessOrEqual(t, ticks[i].Sub(ticks[i-1]), 260*time.Millisecond)
	}
}

func TestPollErrorBecomesFailureEvent(t *testing.T) {
	boom := errors.New("read failed")
	p := NewProducer(&failingSource{err: boom}, 0)
	assert.Equal(t, DefaultInterval, p.interval)

	events, _, done := runProducer(t, p)

	ev := receive(t, events)
	assert.Equal(t, KindFailure, ev.Kind)
	assert.ErrorIs(t, ev.Err, boom)
	assert.ErrorIs(t, <-done, boom)
}

type scriptedDispatcher struct {
	seen []string
	err  error
}

func (d *scriptedDispatcher) Dispatch(_ context.Context, msg tea.KeyMsg) (bool, error) {
	d.seen = append(d.seen, msg.String())
	if d.err != nil {
		return false, d.err
	}
	return msg.String() == "q", nil
}

type countingRedrawer struct {
	count int
}

func (r *countingRedrawer) Redraw() error {
	r.count++
	return nil
}

func keyEvent(s string) Event {
	return Event{Kind: KindInput, Key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}}
}

func TestLoopRedrawsOncePerEventAndQuits(t *testing.T) {
	d := &scriptedDispatcher{}
	r := &countingRedrawer{}
	loop := NewLoop(d, r, logr.Discard())

	events := make(chan Event, 8)
	events <- keyEvent("s")
	events <- Event{Kind: KindTick}
	events <- keyEvent("x")
	events <- keyEvent("q")
	events <- keyEvent("never")

	require.NoError(t, loop.Run(context.Background(), events))
	assert.Equal(t, []string{"s", "x", "q"}, d.seen)
	// initial draw plus one per event before the quit
	assert.Equal(t, 4, r.count)
}

func TestLoopReturnsErrSourceClosed(t *testing.T) {
	loop := NewLoop(&scriptedDispatcher{}, &countingRedrawer{}, logr.Discard())

	events := make(chan Event, 1)
	events <- Event{Kind: KindTick}
	close(events)

	assert.ErrorIs(t, loop.Run(context.Background(), events), ErrSourceClosed)
}

func TestLoopReturnsFailureError(t *testing.T) {
	boom := errors.New("tty gone")
	loop := NewLoop(&scriptedDispatcher{}, &countingRedrawer{}, logr.Discard())

	events := make(chan Event, 1)
	events <- Event{Kind: KindFailure, Err: boom}

	assert.ErrorIs(t, loop.Run(context.Background(), events), boom)
}

func TestLoopStopsOnDispatchError(t *testing.T) {
	boom := errors.New("save failed")
	r := &countingRedrawer{}
	loop := NewLoop(&scriptedDispatcher{err: boom}, r, logr.Discard())

	events := make(chan Event, 1)
	events <- keyEvent("d")

	assert.ErrorIs(t, loop.Run(context.Background(), events), boom)
	assert.Equal(t, 1, r.count)
}

func TestLoopHonoursCancellation(t *testing.T) {
	loop := NewLoop(&scriptedDispatcher{}, &countingRedrawer{}, logr.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, loop.Run(ctx, make(chan Event)), context.Canceled)
}

func TestProducerFeedsLoop(t *testing.T) {
	clock := newFakeClock()
	source := &busySource{clock: clock, step: 10 * time.Millisecond}
	p := NewProducer(source, 200*time.Millisecond, WithClock(clock.Now))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan Event, 16)
	go func() { _ = p.Run(ctx, events) }()

	quitAfter := &quitAfterN{n: 30}
	r := &countingRedrawer{}
	require.NoError(t, NewLoop(quitAfter, r, logr.Discard()).Run(ctx, events))
	assert.Equal(t, 30, quitAfter.seen)
	assert.Greater(t, r.count, 30)
}

type quitAfterN struct {
	n    int
	seen int
}

func (d *quitAfterN) Dispatch(context.Context, tea.KeyMsg) (bool, error) {
	d.seen++
	return d.seen == d.n, nil
}
