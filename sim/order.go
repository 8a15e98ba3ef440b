// Package sim implements the broker model: synchronous order execution
// against bar prices, cash and commission accounting, and round-trip trade
// records. All portfolio state is owned here; strategies only read it.
package sim

// Side of an order.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

// Status is the lifecycle state of an order. Orders are created Submitted
// and resolved by the broker within the same simulation step; they never
// persist across bars.
type Status int8

const (
	Submitted Status = iota
	Accepted
	Completed
	Canceled
	Margin   // buy cost plus commission exceeded available cash
	Rejected // sell size exceeded held position, or non-positive size
)

func (s Status) String() string {
	switch s {
	case Submitted:
		return "Submitted"
	case Accepted:
		return "Accepted"
	case Completed:
		return "Completed"
	case Canceled:
		return "Canceled"
	case Margin:
		return "Margin"
	case Rejected:
		return "Rejected"
	}
	return "Unknown"
}

// Failed reports whether the status is a terminal failure.
func (s Status) Failed() bool {
	return s == Canceled || s == Margin || s == Rejected
}

// Order is a request to trade a whole number of units at a given price.
type Order struct {
	Side   Side
	Size   int64
	Status Status
}
