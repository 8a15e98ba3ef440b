// Package journal persists simulation output: closed trades and per-bar
// equity snapshots. The core engine never requires a journal; a Discard
// implementation is used when persistence is not wanted.
package journal

import "time"

// TradeRecord is a closed round-trip trade as persisted.
type TradeRecord struct {
	TradeID    string
	Size       int64
	EntryTime  time.Time
	EntryPrice float64
	EntryComm  float64
	ExitTime   time.Time
	ExitPrice  float64
	ExitComm   float64
	GrossPnL   float64
	NetPnL     float64
}

// EquitySnapshot is the portfolio state sampled after one bar's executions.
type EquitySnapshot struct {
	Time     time.Time
	Cash     float64
	Position int64
	Value    float64
}

// Journal records trades and equity as a run progresses.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Discard is a Journal that drops everything.
type Discard struct{}

func (Discard) RecordTrade(TradeRecord) error     { return nil }
func (Discard) RecordEquity(EquitySnapshot) error { return nil }
func (Discard) Close() error                      { return nil }
