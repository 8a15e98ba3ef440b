// Package indicators provides streaming technical indicators used by the
// simulation. Indicators consume closed bars one at a time and are
// deterministic: feeding the same bars in the same order always yields the
// same values.
package indicators

import (
	"fmt"

	"github.com/quantmill/backsim/market"
)

// Indicator computes a streaming value from bars.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)" or "BOLL(20,2.0)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether the indicator value is meaningful (warmup done).
	Ready() bool
}

// window is a bounded queue of the most recent closing prices. Values are
// stored oldest-first; push evicts the oldest entry once full.
type window struct {
	size   int
	closes []float64
}

func newWindow(size int) *window {
	return &window{size: size, closes: make([]float64, 0, size)}
}

func (w *window) push(c float64) {
	if len(w.closes) == w.size {
		copy(w.closes, w.closes[1:])
		w.closes[len(w.closes)-1] = c
		return
	}
	w.closes = append(w.closes, c)
}

func (w *window) full() bool { return len(w.closes) == w.size }

func (w *window) reset() { w.closes = w.closes[:0] }

// mean recomputes the arithmetic mean over the whole window each bar. The
// window is small and full recomputation avoids running-sum drift.
func (w *window) mean() float64 {
	sum := 0.0
	for _, c := range w.closes {
		sum += c
	}
	return sum / float64(len(w.closes))
}

// SimpleMA is a streaming simple moving average over closing prices.
type SimpleMA struct {
	period int
	win    *window
}

// NewSimpleMA creates a simple moving average indicator with the given period.
func NewSimpleMA(period int) *SimpleMA {
	if period <= 0 {
		panic(fmt.Sprintf("indicators: period must be positive, got %d", period))
	}
	return &SimpleMA{period: period, win: newWindow(period)}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.win.reset()
}

func (m *SimpleMA) Update(b market.Bar) {
	m.win.push(b.Close)
}

func (m *SimpleMA) Ready() bool {
	return m.win.full()
}

// Value returns the current average, or 0 before warmup. Callers should
// always check Ready().
func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.win.mean()
}
