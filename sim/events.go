package sim

import "time"

// EventKind tags a broker notification.
type EventKind int8

const (
	EventFill EventKind = iota
	EventTradeClosed
	EventOrderFailed
)

// Event is an observable broker notification. Events are returned from
// Execute as an explicit list; there is no callback dispatch.
type Event struct {
	Kind EventKind
	Time time.Time

	// EventFill
	Side       Side
	Size       int64
	Price      float64
	Value      float64 // cost for buys, proceeds for sells
	Commission float64

	// EventTradeClosed
	Trade *Trade

	// EventOrderFailed
	Status Status
}
