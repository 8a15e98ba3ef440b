package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmill/backsim/market"
	"github.com/quantmill/backsim/sim"
)

// fakeAccount is a strategies.Account with directly settable state.
type fakeAccount struct {
	cash float64
	pos  sim.Position
}

func (f *fakeAccount) Cash() float64 { return f.cash }

func (f *fakeAccount) Position() sim.Position { return f.pos }

// Period-3 fixture: close crosses above the lower band at bar 4 and back
// below the upper band at bar 7 (bands verified independently).
var reversionCloses = []float64{100.0, 102.0, 98.0, 95.0, 99.0, 103.0, 107.0, 104.0, 103.5, 103.0}

func reversionBars() []market.Bar {
	base := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Bar, len(reversionCloses))
	for i, c := range reversionCloses {
		open := reversionCloses[0]
		if i > 0 {
			open = reversionCloses[i-1]
		}
		out[i] = market.Bar{Time: base.AddDate(0, 0, i), Open: open, High: open + 5, Low: open - 5, Close: c}
	}
	return out
}

func TestBollingerReversionRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewBollingerReversion(3, 1.0)
	assert.Equal(t, "bollinger-reversion(3,1.0)", s.Name())

	acct := &fakeAccount{cash: 1000}
	bars := reversionBars()

	// Warm-up and pre-cross bars produce no request.
	for i := 0; i < 4; i++ {
		assert.Nilf(t, s.OnBar(acct, bars[i]), "bar %d", i)
	}

	// Bar 4: buy cross while flat. Size = floor(1000 / open 95) = 10.
	req := s.OnBar(acct, bars[4])
	require.NotNil(t, req)
	assert.Equal(t, sim.Buy, req.Side)
	assert.Equal(t, int64(10), req.Size)

	// Simulate the fill.
	acct.cash = 1000 - 10*95.0
	acct.pos = sim.Position{Size: 10, AvgEntry: 95.0}

	assert.Nil(t, s.OnBar(acct, bars[5]))
	assert.Nil(t, s.OnBar(acct, bars[6]))

	// Bar 7: sell cross while long. The whole position is requested.
	req = s.OnBar(acct, bars[7])
	require.NotNil(t, req)
	assert.Equal(t, sim.Sell, req.Side)
	assert.Equal(t, int64(10), req.Size)
}

func TestBollingerReversionIgnoresSignalsOutsideState(t *testing.T) {
	t.Parallel()

	t.Run("buy cross while long", func(t *testing.T) {
		t.Parallel()
		s := NewBollingerReversion(3, 1.0)
		acct := &fakeAccount{cash: 1000, pos: sim.Position{Size: 5, AvgEntry: 90}}
		for i, bar := range reversionBars()[:5] {
			assert.Nilf(t, s.OnBar(acct, bar), "bar %d", i)
		}
	})

	t.Run("sell cross while flat", func(t *testing.T) {
		t.Parallel()
		s := NewBollingerReversion(3, 1.0)
		// Zero cash: the buy cross at bar 4 sizes to zero, so the machine
		// stays flat and the sell cross at bar 7 must be ignored.
		acct := &fakeAccount{cash: 0}
		for i, bar := range reversionBars() {
			assert.Nilf(t, s.OnBar(acct, bar), "bar %d", i)
		}
	})
}

func TestBollingerReversionZeroSizeSubmitsNothing(t *testing.T) {
	t.Parallel()

	s := NewBollingerReversion(3, 1.0)
	acct := &fakeAccount{cash: 50} // floor(50 / 95) = 0
	for i, bar := range reversionBars()[:5] {
		assert.Nilf(t, s.OnBar(acct, bar), "bar %d", i)
	}
}

func TestBollingerReversionReset(t *testing.T) {
	t.Parallel()

	s := NewBollingerReversion(3, 1.0)
	acct := &fakeAccount{cash: 1000}
	bars := reversionBars()

	for i := 0; i <= 4; i++ {
		s.OnBar(acct, bars[i])
	}
	s.Reset()

	// Replaying from scratch after Reset reproduces the same request.
	for i := 0; i < 4; i++ {
		assert.Nil(t, s.OnBar(acct, bars[i]))
	}
	req := s.OnBar(acct, bars[4])
	require.NotNil(t, req)
	assert.Equal(t, int64(10), req.Size)
}

func TestByName(t *testing.T) {
	t.Parallel()

	s, err := ByName("bollinger-reversion", 20, 2.0)
	require.NoError(t, err)
	assert.IsType(t, &BollingerReversion{}, s)

	s, err = ByName("noop", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "noop", s.Name())

	_, err = ByName("martingale", 0, 0)
	assert.Error(t, err)
}
