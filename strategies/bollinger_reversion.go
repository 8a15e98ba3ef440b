package strategies

import (
	"fmt"

	"github.com/quantmill/backsim/indicators"
	"github.com/quantmill/backsim/market"
	"github.com/quantmill/backsim/sim"
)

// BollingerReversion is an all-in, single-position, long-only mean-reversion
// rule over Bollinger bands:
//
//   - Flat, and the close crosses above the lower band: buy
//     floor(cash / bar open) units, filled at the bar's open.
//   - Long, and the close crosses below the upper band: sell the whole
//     position, filled at the bar's open.
//
// The Flat/Long state is derived from the broker position (flat means size
// zero), so a failed fill leaves the machine in its prior state. Signals
// outside their applicable state are ignored, as are all signals during
// indicator warm-up.
type BollingerReversion struct {
	period    int
	devfactor float64
	boll      *indicators.Bollinger
	lowerX    Crossover
	upperX    Crossover
}

// NewBollingerReversion creates the strategy with the given rolling window
// period and band width in standard deviations.
func NewBollingerReversion(period int, devfactor float64) *BollingerReversion {
	return &BollingerReversion{
		period:    period,
		devfactor: devfactor,
		boll:      indicators.NewBollinger(period, devfactor),
	}
}

func (s *BollingerReversion) Name() string {
	return fmt.Sprintf("bollinger-reversion(%d,%.1f)", s.period, s.devfactor)
}

func (s *BollingerReversion) Reset() {
	s.boll.Reset()
	s.lowerX.Reset()
	s.upperX.Reset()
}

// Bands returns the current band snapshot and whether it is valid yet.
func (s *BollingerReversion) Bands() (indicators.Snapshot, bool) {
	return s.boll.Last(), s.boll.Ready()
}

// OnBar updates the bands with the bar's close, evaluates both crossovers,
// and decides an order. Fills use the bar's own open: the crossing was
// already determined by the windowed closes, so the open is the earliest
// price the engine lets an order execute at.
func (s *BollingerReversion) OnBar(acct Account, bar market.Bar) *OrderRequest {
	s.boll.Update(bar)
	ready := s.boll.Ready()
	snap := s.boll.Last()

	buySig := s.lowerX.Update(bar.Close, snap.Lower, ready)
	sellSig := s.upperX.Update(bar.Close, snap.Upper, ready)

	pos := acct.Position()

	if pos.Size == 0 {
		if buySig != CrossUp {
			return nil
		}
		size := int64(acct.Cash() / bar.Open)
		if size <= 0 {
			return nil
		}
		return &OrderRequest{Side: sim.Buy, Size: size}
	}

	if sellSig == CrossDown {
		return &OrderRequest{Side: sim.Sell, Size: pos.Size}
	}
	return nil
}
