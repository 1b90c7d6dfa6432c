package app

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"snipman/internal/eventbus"
	"snipman/internal/store"
)

const saveTimeout = 5 * time.Second

// Autosaver writes the snippet list to the store whenever it changes. Handlers
// run on bus goroutines, so it only ever sees copies of the list and never
// touches the application state.
type Autosaver struct {
	store store.Store
	bus   eventbus.EventBus
	log   logr.Logger

	mu          sync.Mutex
	lastVersion uint64

	unsubscribe func()
}

// NewAutosaver subscribes to snippet list changes on bus
func NewAutosaver(s store.Store, bus eventbus.EventBus, log logr.Logger) *Autosaver {
	a := &Autosaver{
		store: s,
		bus:   bus,
		log:   log.WithName("autosave"),
	}
	a.unsubscribe = bus.Subscribe(eventbus.EventSnippetsChanged, a.HandleEvent)
	return a
}

// HandleEvent saves the snippets carried by a SnippetsChangedEvent. Copies
// older than the last saved one are skipped.
func (a *Autosaver) HandleEvent(event eventbus.DomainEvent) {
	e, ok := event.(eventbus.SnippetsChangedEvent)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if e.Version <= a.lastVersion {
		a.log.V(1).Info("skipping stale snapshot", "version", e.Version, "saved", a.lastVersion)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := a.store.Save(ctx, e.Snippets); err != nil {
		a.log.Error(err, "failed to save snippets", "version", e.Version)
		a.bus.Publish(eventbus.ErrorEvent{
			Message: "failed to save snippets",
			Err:     err,
		})
		return
	}

	a.lastVersion = e.Version
	a.log.V(1).Info("snippets saved", "version", e.Version, "count", len(e.Snippets))
	a.bus.Publish(eventbus.StoreSavedEvent{Count: len(e.Snippets)})
}

// Stop unsubscribes from the bus
func (a *Autosaver) Stop() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}
