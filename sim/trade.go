package sim

import "time"

// Trade is the full round trip of a position from open (flat to long) back
// to flat, carrying realized profit and loss. A Trade is created when a
// position opens and finalized when the position size returns to zero; only
// closed trades are appended to the ledger.
type Trade struct {
	ID         string
	Size       int64
	EntryTime  time.Time
	EntryPrice float64
	EntryComm  float64
	ExitTime   time.Time
	ExitPrice  float64
	ExitComm   float64
	GrossPnL   float64
	NetPnL     float64
	Closed     bool
}

// finalize computes PnL once the position has returned to flat. ExitComm is
// accumulated by the broker across partial sells before finalize runs.
//
//	gross = (exit - entry) * size
//	net   = gross - (entry commission + exit commission)
func (t *Trade) finalize(exitTime time.Time, exitPrice float64) {
	t.ExitTime = exitTime
	t.ExitPrice = exitPrice
	t.GrossPnL = (exitPrice - t.EntryPrice) * float64(t.Size)
	t.NetPnL = t.GrossPnL - (t.EntryComm + t.ExitComm)
	t.Closed = true
}

// Position is the broker's current holding. Size is always zero or positive;
// size zero means flat.
type Position struct {
	Size     int64
	AvgEntry float64
}
