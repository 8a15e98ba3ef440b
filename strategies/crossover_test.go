package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossover(t *testing.T) {
	t.Parallel()

	type step struct {
		a, b  float64
		valid bool
		want  Cross
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "cross up",
			steps: []step{
				{98, 99, true, NoCross},
				{100, 99, true, CrossUp},
			},
		},
		{
			name: "cross down",
			steps: []step{
				{101, 100, true, NoCross},
				{99, 100, true, CrossDown},
			},
		},
		{
			name: "touch then rise counts as cross up",
			steps: []step{
				{100, 100, true, NoCross},
				{101, 100, true, CrossUp},
			},
		},
		{
			name: "touch then fall counts as cross down",
			steps: []step{
				{100, 100, true, NoCross},
				{99, 100, true, CrossDown},
			},
		},
		{
			name: "no cross while staying above",
			steps: []step{
				{101, 100, true, NoCross},
				{102, 100, true, NoCross},
				{103, 100, true, NoCross},
			},
		},
		{
			name: "warm-up yields no cross",
			steps: []step{
				{0, 0, false, NoCross},
				{0, 0, false, NoCross},
				{98, 99, true, NoCross},
				{100, 99, true, CrossUp},
			},
		},
		{
			name: "invalid bar clears the previous pair",
			steps: []step{
				{98, 99, true, NoCross},
				{0, 0, false, NoCross},
				{100, 99, true, NoCross}, // no previous pair to cross from
				{101, 99, true, NoCross},
			},
		},
		{
			name: "round trip",
			steps: []step{
				{98, 99, true, NoCross},
				{100, 99, true, CrossUp},
				{100, 99, true, NoCross},
				{98, 99, true, CrossDown},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c Crossover
			for i, s := range tt.steps {
				got := c.Update(s.a, s.b, s.valid)
				assert.Equalf(t, s.want, got, "step %d", i)
			}
		})
	}
}

func TestCrossoverReset(t *testing.T) {
	t.Parallel()

	var c Crossover
	c.Update(98, 99, true)
	c.Reset()

	// After reset the next update only seeds the previous pair.
	assert.Equal(t, NoCross, c.Update(100, 99, true))
	assert.Equal(t, NoCross, c.Update(101, 99, true))
}
