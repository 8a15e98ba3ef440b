// Package analytics derives per-bar and aggregate return metrics from the
// portfolio value history of a simulation run.
package analytics

import (
	"math"
	"time"
)

// Point is one entry of the time-return series: the simple return of the
// portfolio value over the bar ending at Time.
type Point struct {
	Time   time.Time
	Return float64
}

// TimeReturn samples portfolio value once per bar, after that bar's
// executions are applied, and records the return against the previous bar's
// value. The first sampled bar has no prior value and yields no point.
type TimeReturn struct {
	havePrev bool
	prev     float64
	points   []Point
}

// Sample records the portfolio value for the bar ending at ts.
func (t *TimeReturn) Sample(ts time.Time, value float64) {
	if t.havePrev {
		t.points = append(t.points, Point{Time: ts, Return: (value - t.prev) / t.prev})
	}
	t.prev = value
	t.havePrev = true
}

// Points returns the ordered time-return series, one point per bar after the
// first.
func (t *TimeReturn) Points() []Point {
	return t.points
}

// Reset clears the series so the sampler can be reused for another run.
func (t *TimeReturn) Reset() {
	t.havePrev = false
	t.prev = 0
	t.points = nil
}

// Returns are the aggregate statistics over a time-return series.
type Returns struct {
	RTot     float64 // total compound log return: sum of ln(1+r)
	RAvg     float64 // average log return per bar
	RNorm    float64 // annualized return: exp(ravg * periods per year) - 1
	RNorm100 float64 // RNorm expressed in percent
}

// Annualize computes aggregate returns from the time-return series, using
// periodsPerYear bars per year (252 for daily trading bars).
func Annualize(points []Point, periodsPerYear int) Returns {
	if len(points) == 0 {
		return Returns{}
	}

	rtot := 0.0
	for _, p := range points {
		rtot += math.Log(1 + p.Return)
	}
	ravg := rtot / float64(len(points))
	rnorm := math.Exp(ravg*float64(periodsPerYear)) - 1

	return Returns{
		RTot:     rtot,
		RAvg:     ravg,
		RNorm:    rnorm,
		RNorm100: rnorm * 100,
	}
}
