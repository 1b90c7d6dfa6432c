package app

import (
	"fmt"

	"github.com/go-logr/logr"

	"snipman/internal/eventbus"
)

// Notice is a status line message raised by a background event
type Notice struct {
	Text string
	Err  bool
}

// Notices turns bus events into status line notices. Handlers only queue
// them; the frame drains the queue before drawing.
type Notices struct {
	queue        chan Notice
	log          logr.Logger
	unsubscribes []func()
}

// NewNotices subscribes to error, search and save events on bus
func NewNotices(bus eventbus.EventBus, log logr.Logger) *Notices {
	n := &Notices{
		queue: make(chan Notice, 16),
		log:   log.WithName("notices"),
	}
	n.unsubscribes = append(n.unsubscribes,
		bus.Subscribe(eventbus.EventError, n.handleEvent),
		bus.Subscribe(eventbus.EventSearchApplied, n.handleEvent),
		bus.Subscribe(eventbus.EventStoreSaved, n.handleEvent),
	)
	return n
}

func (n *Notices) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		text := "Error: " + e.Message
		if e.Err != nil {
			text = fmt.Sprintf("Error: %s: %v", e.Message, e.Err)
		}
		n.push(Notice{Text: text, Err: true})

	case eventbus.SearchAppliedEvent:
		if e.Query == "" {
			n.push(Notice{Text: "Filter cleared"})
			return
		}
		n.push(Notice{Text: fmt.Sprintf("%d match(es)", e.Matches)})

	case eventbus.StoreSavedEvent:
		n.log.V(1).Info("store saved", "count", e.Count)
		n.push(Notice{Text: fmt.Sprintf("Saved %d snippet(s)", e.Count)})
	}
}

func (n *Notices) push(notice Notice) {
	select {
	case n.queue <- notice:
	default:
		n.log.Info("notice queue full, dropping message", "message", notice.Text)
	}
}

// Drain empties the queue and returns the notice to show: the newest error
// if there is one, otherwise the newest notice.
func (n *Notices) Drain() (Notice, bool) {
	var latest Notice
	var ok bool
	for {
		select {
		case notice := <-n.queue:
			if !ok || notice.Err || !latest.Err {
				latest, ok = notice, true
			}
		default:
			return latest, ok
		}
	}
}

// Stop unsubscribes from the bus
func (n *Notices) Stop() {
	for _, unsubscribe := range n.unsubscribes {
		unsubscribe()
	}
	n.unsubscribes = nil
}
