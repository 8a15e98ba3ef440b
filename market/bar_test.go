package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func okBar(n int, close float64) Bar {
	return Bar{Time: day(n), Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
}

func TestNewSeriesValid(t *testing.T) {
	t.Parallel()

	bars := []Bar{okBar(0, 100), okBar(1, 101), okBar(2, 99.5)}
	s, err := NewSeries(bars)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, bars[0], s.First())
	assert.Equal(t, bars[2], s.Last())
	assert.Equal(t, bars[1], s.Bar(1))
}

func TestNewSeriesCopiesInput(t *testing.T) {
	t.Parallel()

	bars := []Bar{okBar(0, 100), okBar(1, 101)}
	s, err := NewSeries(bars)
	require.NoError(t, err)

	bars[0].Close = 1.0
	assert.Equal(t, 100.0, s.Bar(0).Close)
}

func TestNewSeriesIntegrity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bars []Bar
	}{
		{
			name: "duplicate timestamp",
			bars: []Bar{okBar(0, 100), okBar(0, 101)},
		},
		{
			name: "decreasing timestamp",
			bars: []Bar{okBar(1, 100), okBar(0, 101)},
		},
		{
			name: "zero timestamp",
			bars: []Bar{{Open: 1, High: 1, Low: 1, Close: 1}},
		},
		{
			name: "zero price",
			bars: []Bar{{Time: day(0), Open: 100, High: 100, Low: 0, Close: 100}},
		},
		{
			name: "negative price",
			bars: []Bar{{Time: day(0), Open: 100, High: 100, Low: -5, Close: 100}},
		},
		{
			name: "nan price",
			bars: []Bar{{Time: day(0), Open: 100, High: math.NaN(), Low: 99, Close: 100}},
		},
		{
			name: "infinite price",
			bars: []Bar{{Time: day(0), Open: 100, High: math.Inf(1), Low: 99, Close: 100}},
		},
		{
			name: "negative volume",
			bars: []Bar{{Time: day(0), Open: 100, High: 101, Low: 99, Close: 100, Volume: -1}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewSeries(tt.bars)
			assert.Nil(t, s)

			var derr *DataIntegrityError
			require.ErrorAs(t, err, &derr)
			assert.NotEmpty(t, derr.Error())
		})
	}
}

func TestNewSeriesEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewSeries(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
