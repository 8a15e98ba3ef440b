package strategies

// Cross is a crossover event between two series A and B.
type Cross int8

const (
	NoCross   Cross = 0
	CrossUp   Cross = +1 // A crossed above B
	CrossDown Cross = -1 // A crossed below B
)

// Crossover detects transitions between two series fed one value pair per
// bar. With a1,b1 the previous pair and a0,b0 the current one:
//
//	CrossUp   when a1 <= b1 and a0 > b0
//	CrossDown when a1 >= b1 and a0 < b0
//
// While either series has no value yet (indicator warm-up) callers pass
// valid=false; those bars yield NoCross and do not seed the previous pair.
type Crossover struct {
	havePrev     bool
	prevA, prevB float64
}

// Update consumes the pair for the current bar and reports any crossover
// against the previous bar's pair.
func (c *Crossover) Update(a, b float64, valid bool) Cross {
	if !valid {
		c.havePrev = false
		return NoCross
	}
	if !c.havePrev {
		c.prevA, c.prevB = a, b
		c.havePrev = true
		return NoCross
	}

	out := NoCross
	switch {
	case c.prevA <= c.prevB && a > b:
		out = CrossUp
	case c.prevA >= c.prevB && a < b:
		out = CrossDown
	}

	c.prevA, c.prevB = a, b
	return out
}

// Reset clears the previous pair.
func (c *Crossover) Reset() {
	c.havePrev = false
}
