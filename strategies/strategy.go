// Package strategies contains the trading rules driven by the backtest
// session. A strategy sees one closed bar at a time plus read-only broker
// state, and may answer with at most one order request per bar.
package strategies

import (
	"fmt"
	"strings"

	"github.com/quantmill/backsim/market"
	"github.com/quantmill/backsim/sim"
)

// Account is the read-only view of broker state a strategy decides from.
// Strategies never mutate portfolio state; only the broker does.
type Account interface {
	Cash() float64
	Position() sim.Position
}

// OrderRequest asks the broker to trade Size units. The session resolves it
// within the same simulation step.
type OrderRequest struct {
	Side sim.Side
	Size int64
}

// Strategy is the interface a bar-driven trading rule must implement.
// OnBar is called once per bar in chronological order and returns nil when
// no action is wanted.
type Strategy interface {
	Name() string
	Reset()
	OnBar(acct Account, bar market.Bar) *OrderRequest
}

// ByName constructs a registered strategy. period and devfactor apply to
// strategies that take them; others ignore the arguments.
func ByName(name string, period int, devfactor float64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return NoopStrategy{}, nil

	case "bollinger-reversion", "bollinger":
		return NewBollingerReversion(period, devfactor), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, bollinger-reversion)", name)
	}
}

// NoopStrategy never trades. Useful for exercising the session loop.
type NoopStrategy struct{}

func (NoopStrategy) Name() string { return "noop" }

func (NoopStrategy) Reset() {}

func (NoopStrategy) OnBar(Account, market.Bar) *OrderRequest { return nil }
