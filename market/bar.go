// Package market holds the price data types consumed by the simulation:
// OHLCV bars and validated, chronologically ordered bar series.
package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is a single OHLCV price bar. Bars are immutable once ingested; the
// engine only ever reads them.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DataIntegrityError reports a malformed bar sequence. It is raised before
// any simulation step executes and always aborts the run.
type DataIntegrityError struct {
	Index  int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("bar %d: %s", e.Index, e.Reason)
}

// Series is an ordered sequence of bars, strictly increasing by time.
type Series struct {
	bars []Bar
}

// NewSeries validates the given bars and wraps them in a Series. The slice is
// copied so later mutation of the caller's slice cannot reach the engine.
//
// Validation rules: timestamps strictly increasing and unique, all four price
// fields positive and finite, volume non-negative. Any violation returns a
// *DataIntegrityError.
func NewSeries(bars []Bar) (*Series, error) {
	for i, b := range bars {
		if b.Time.IsZero() {
			return nil, &DataIntegrityError{Index: i, Reason: "zero timestamp"}
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return nil, &DataIntegrityError{
				Index:  i,
				Reason: fmt.Sprintf("timestamp %s not after previous %s", b.Time.Format("2006-01-02"), bars[i-1].Time.Format("2006-01-02")),
			}
		}
		for _, p := range [...]struct {
			name string
			v    float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
			if p.v <= 0 || math.IsNaN(p.v) || math.IsInf(p.v, 0) {
				return nil, &DataIntegrityError{Index: i, Reason: fmt.Sprintf("%s price %v is not positive finite", p.name, p.v)}
			}
		}
		if b.Volume < 0 || math.IsNaN(b.Volume) {
			return nil, &DataIntegrityError{Index: i, Reason: fmt.Sprintf("volume %v is negative", b.Volume)}
		}
	}

	out := make([]Bar, len(bars))
	copy(out, bars)
	return &Series{bars: out}, nil
}

// Len returns the number of bars in the series.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i (0-based, chronological).
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// First returns the earliest bar. Panics on an empty series.
func (s *Series) First() Bar { return s.bars[0] }

// Last returns the latest bar. Panics on an empty series.
func (s *Series) Last() Bar { return s.bars[len(s.bars)-1] }
