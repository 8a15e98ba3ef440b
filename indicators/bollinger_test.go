package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmill/backsim/market"
)

func bars(closes ...float64) []market.Bar {
	base := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Bar, len(closes))
	for i, c := range closes {
		out[i] = market.Bar{Time: base.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return out
}

func TestBollingerWarmup(t *testing.T) {
	t.Parallel()

	b := NewBollinger(3, 2.0)
	assert.Equal(t, "BOLL(3,2.0)", b.Name())
	assert.Equal(t, 3, b.Warmup())

	bs := bars(100, 101, 102, 103)

	b.Update(bs[0])
	assert.False(t, b.Ready())
	b.Update(bs[1])
	assert.False(t, b.Ready())
	b.Update(bs[2])
	assert.True(t, b.Ready())
}

func TestBollingerValues(t *testing.T) {
	t.Parallel()

	// Window {1,2,3}: mean 2, population variance 2/3.
	b := NewBollinger(3, 2.0)
	for _, bar := range bars(1, 2, 3) {
		b.Update(bar)
	}
	require.True(t, b.Ready())

	snap := b.Last()
	sd := math.Sqrt(2.0 / 3.0)
	assert.InDelta(t, 2.0, snap.SMA, 1e-12)
	assert.InDelta(t, sd, snap.StdDev, 1e-12)
	assert.InDelta(t, 2.0+2*sd, snap.Upper, 1e-12)
	assert.InDelta(t, 2.0-2*sd, snap.Lower, 1e-12)

	// Slide the window to {2,3,7}: mean 4, variance (4+1+9)/3.
	b.Update(bars(1, 2, 3, 7)[3])
	snap = b.Last()
	sd = math.Sqrt(14.0 / 3.0)
	assert.InDelta(t, 4.0, snap.SMA, 1e-12)
	assert.InDelta(t, sd, snap.StdDev, 1e-12)
}

func TestBollingerTwentyBarWindow(t *testing.T) {
	t.Parallel()

	// Independently computed values for a 20-bar window.
	closes := []float64{
		100.0, 101.5, 99.2, 100.8, 98.9, 101.1, 100.2, 99.5, 101.8, 100.4,
		99.1, 100.6, 101.2, 98.8, 100.1, 99.7, 101.4, 100.9, 99.3, 100.5,
	}
	b := NewBollinger(20, 2.0)
	for _, bar := range bars(closes...) {
		b.Update(bar)
	}
	require.True(t, b.Ready())

	snap := b.Last()
	assert.InDelta(t, 100.25, snap.SMA, 1e-9)
	assert.InDelta(t, 0.8958236434, snap.StdDev, 1e-9)
	assert.InDelta(t, 102.0416472867, snap.Upper, 1e-9)
	assert.InDelta(t, 98.4583527133, snap.Lower, 1e-9)
}

func TestBollingerBandOrdering(t *testing.T) {
	t.Parallel()

	closes := []float64{100, 104, 96, 101, 99, 107, 93, 100, 102, 98, 105, 95, 100}
	b := NewBollinger(5, 2.0)
	for _, bar := range bars(closes...) {
		b.Update(bar)
		if !b.Ready() {
			continue
		}
		snap := b.Last()
		assert.GreaterOrEqual(t, snap.Upper, snap.SMA)
		assert.GreaterOrEqual(t, snap.SMA, snap.Lower)
		assert.GreaterOrEqual(t, snap.StdDev, 0.0)
	}
}

func TestBollingerSnapshotTime(t *testing.T) {
	t.Parallel()

	bs := bars(100, 101, 102)
	b := NewBollinger(3, 2.0)
	for _, bar := range bs {
		b.Update(bar)
	}
	assert.Equal(t, bs[2].Time, b.Last().Time)
}

func TestBollingerReset(t *testing.T) {
	t.Parallel()

	b := NewBollinger(3, 2.0)
	for _, bar := range bars(100, 101, 102) {
		b.Update(bar)
	}
	require.True(t, b.Ready())

	b.Reset()
	assert.False(t, b.Ready())
	assert.Equal(t, Snapshot{}, b.Last())
}

func TestBollingerPanicsOnBadParams(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewBollinger(0, 2.0) })
	assert.Panics(t, func() { NewBollinger(20, -1.0) })
}
