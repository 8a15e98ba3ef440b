package sim

import (
	"time"

	"github.com/quantmill/backsim/internal/id"
)

// Broker executes orders synchronously against a given price and owns all
// portfolio state: cash, position, and the ledger of closed trades.
//
// Failed orders never mutate state; they resolve to a Margin or Rejected
// status and produce a failure event, and the simulation continues on the
// next bar. Cash never goes negative.
type Broker struct {
	cash     float64
	commRate float64
	pos      Position
	open     *Trade
	ledger   []Trade
}

// NewBroker creates a broker with starting cash and a commission rate
// charged as a fraction of notional on every fill.
func NewBroker(cash, commissionRate float64) *Broker {
	return &Broker{cash: cash, commRate: commissionRate}
}

// Cash returns available cash.
func (b *Broker) Cash() float64 { return b.cash }

// Position returns a copy of the current holding.
func (b *Broker) Position() Position { return b.pos }

// CommissionRate returns the per-fill commission fraction.
func (b *Broker) CommissionRate() float64 { return b.commRate }

// Value returns the portfolio value marked at the given price:
// cash + position size * price.
func (b *Broker) Value(price float64) float64 {
	return b.cash + float64(b.pos.Size)*price
}

// Ledger returns the closed trades in closing order.
func (b *Broker) Ledger() []Trade { return b.ledger }

// Execute resolves the order against the given execution price. It returns
// the resolved order (Status Completed, Margin, or Rejected) and the
// notification events produced by the execution.
func (b *Broker) Execute(o Order, t time.Time, price float64) (Order, []Event) {
	o.Status = Accepted

	switch o.Side {
	case Buy:
		return b.executeBuy(o, t, price)
	case Sell:
		return b.executeSell(o, t, price)
	}

	o.Status = Rejected
	return o, []Event{{Kind: EventOrderFailed, Time: t, Side: o.Side, Status: Rejected}}
}

func (b *Broker) executeBuy(o Order, t time.Time, price float64) (Order, []Event) {
	if o.Size <= 0 {
		o.Status = Rejected
		return o, []Event{{Kind: EventOrderFailed, Time: t, Side: Buy, Status: Rejected}}
	}

	cost := float64(o.Size) * price
	comm := b.commRate * cost
	if cost+comm > b.cash {
		o.Status = Margin
		return o, []Event{{Kind: EventOrderFailed, Time: t, Side: Buy, Status: Margin}}
	}

	b.cash -= cost + comm

	// Weighted average entry. The all-in strategy only ever buys from flat,
	// but adding to a position is defined for generality.
	total := b.pos.Size + o.Size
	b.pos.AvgEntry = (b.pos.AvgEntry*float64(b.pos.Size) + price*float64(o.Size)) / float64(total)
	b.pos.Size = total

	if b.open == nil {
		b.open = &Trade{
			ID:         id.New(),
			Size:       o.Size,
			EntryTime:  t,
			EntryPrice: price,
			EntryComm:  comm,
		}
	} else {
		b.open.Size += o.Size
		b.open.EntryPrice = b.pos.AvgEntry
		b.open.EntryComm += comm
	}

	o.Status = Completed
	return o, []Event{{
		Kind:       EventFill,
		Time:       t,
		Side:       Buy,
		Size:       o.Size,
		Price:      price,
		Value:      cost,
		Commission: comm,
	}}
}

func (b *Broker) executeSell(o Order, t time.Time, price float64) (Order, []Event) {
	if o.Size <= 0 || o.Size > b.pos.Size {
		o.Status = Rejected
		return o, []Event{{Kind: EventOrderFailed, Time: t, Side: Sell, Status: Rejected}}
	}

	proceeds := float64(o.Size) * price
	comm := b.commRate * proceeds

	b.cash += proceeds - comm
	b.pos.Size -= o.Size
	b.open.ExitComm += comm

	events := []Event{{
		Kind:       EventFill,
		Time:       t,
		Side:       Sell,
		Size:       o.Size,
		Price:      price,
		Value:      proceeds,
		Commission: comm,
	}}

	if b.pos.Size == 0 {
		b.pos.AvgEntry = 0
		b.open.finalize(t, price)
		b.ledger = append(b.ledger, *b.open)
		closed := &b.ledger[len(b.ledger)-1]
		b.open = nil
		events = append(events, Event{Kind: EventTradeClosed, Time: t, Trade: closed})
	}

	o.Status = Completed
	return o, events
}
