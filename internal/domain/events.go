package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSnippetsChanged EventType = "SnippetsChanged"
	EventSearchApplied   EventType = "SearchApplied"
	EventStoreSaved      EventType = "StoreSaved"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SnippetsChangedEvent carries a copy of the full snippet list for persistence.
// Version increases with every change so stale copies can be detected.
type SnippetsChangedEvent struct {
	Version  uint64
	Snippets []Snippet
}

func (e SnippetsChangedEvent) Type() EventType { return EventSnippetsChanged }

// SearchAppliedEvent is emitted when a search query is committed
type SearchAppliedEvent struct {
	Query   string
	Matches int
}

func (e SearchAppliedEvent) Type() EventType { return EventSearchApplied }

// StoreSavedEvent is emitted after the snippet store was written
type StoreSavedEvent struct {
	Count int
}

func (e StoreSavedEvent) Type() EventType { return EventStoreSaved }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
