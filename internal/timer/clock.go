package timer

// clock accumulates elapsed T-cycles and fires once every period
// cycles, carrying the remainder forward so that no fraction of a
// period is ever lost between steps.
type clock struct {
	period uint32
	n      uint32
}

func newClock(period uint32) clock {
	return clock{period: period}
}

// tick adds the elapsed cycles and returns how many whole periods
// have passed.
func (c *clock) tick(cycles uint32) uint32 {
	c.n += cycles
	ticks := c.n / c.period
	c.n %= c.period
	return ticks
}

// reset discards any accumulated progress toward the next fire.
func (c *clock) reset() {
	c.n = 0
}
