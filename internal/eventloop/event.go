package eventloop

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind identifies what an Event carries
type Kind int

const (
	KindInput Kind = iota
	KindTick
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Event is one item on the producer/consumer queue
type Event struct {
	Kind Kind
	Key  tea.KeyMsg // set for KindInput
	Err  error      // set for KindFailure
	At   time.Time
}
