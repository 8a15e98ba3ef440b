package indicators

import (
	"fmt"
	"math"
	"time"

	"github.com/quantmill/backsim/market"
)

// Snapshot is the per-bar output of the Bollinger indicator once the rolling
// window is full. Upper >= SMA >= Lower holds whenever StdDev >= 0, which is
// always.
type Snapshot struct {
	Time   time.Time
	SMA    float64
	StdDev float64
	Upper  float64
	Lower  float64
}

// Bollinger computes a simple moving average plus upper/lower bands offset by
// devfactor standard deviations over a rolling window of closing prices.
//
// The standard deviation uses the population convention (divide by N, not
// N-1). Bands are undefined for the first period-1 bars; Ready reports when
// snapshots become available.
type Bollinger struct {
	period    int
	devfactor float64
	win       *window
	last      Snapshot
}

// NewBollinger creates a Bollinger band indicator.
func NewBollinger(period int, devfactor float64) *Bollinger {
	if period <= 0 {
		panic(fmt.Sprintf("indicators: period must be positive, got %d", period))
	}
	if devfactor < 0 {
		panic(fmt.Sprintf("indicators: devfactor must be non-negative, got %v", devfactor))
	}
	return &Bollinger{
		period:    period,
		devfactor: devfactor,
		win:       newWindow(period),
	}
}

func (b *Bollinger) Name() string {
	return fmt.Sprintf("BOLL(%d,%.1f)", b.period, b.devfactor)
}

func (b *Bollinger) Warmup() int {
	return b.period
}

func (b *Bollinger) Reset() {
	b.win.reset()
	b.last = Snapshot{}
}

// Update consumes the next closed bar. Once the window is full a new
// snapshot is computed from scratch over the window.
func (b *Bollinger) Update(bar market.Bar) {
	b.win.push(bar.Close)
	if !b.win.full() {
		return
	}

	mean := b.win.mean()
	variance := 0.0
	for _, c := range b.win.closes {
		d := c - mean
		variance += d * d
	}
	variance /= float64(b.period)
	sd := math.Sqrt(variance)

	b.last = Snapshot{
		Time:   bar.Time,
		SMA:    mean,
		StdDev: sd,
		Upper:  mean + b.devfactor*sd,
		Lower:  mean - b.devfactor*sd,
	}
}

func (b *Bollinger) Ready() bool {
	return b.win.full()
}

// Last returns the snapshot for the most recently consumed bar. Only
// meaningful when Ready() is true.
func (b *Bollinger) Last() Snapshot {
	return b.last
}
