// Package timer implements the DMG timer registers DIV, TIMA, TMA and
// TAC. The divider and counter are driven by the T-cycles the CPU
// reports after each instruction, with sub-cycle accumulators tracking
// progress toward the next increment.
package timer

import (
	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
)

// Register addresses.
const (
	DIV  = 0xFF04 // free-running divider, incremented at 16384 Hz
	TIMA = 0xFF05 // timer counter, incremented per TAC's clock select
	TMA  = 0xFF06 // value reloaded into TIMA on overflow
	TAC  = 0xFF07 // bit 2 enable, bits 0-1 clock select
)

// tacPeriods maps TAC's clock select bits to the TIMA period in
// T-cycles: 4096 Hz, 262144 Hz, 65536 Hz and 16384 Hz respectively.
var tacPeriods = [4]uint32{1024, 16, 64, 256}

// divPeriod is the DIV increment period in T-cycles (16384 Hz).
const divPeriod = 256

// Controller is the timer unit. It owns the four timer registers and
// requests the Timer interrupt on TIMA overflow.
type Controller struct {
	div  uint8
	tima uint8
	tma  uint8
	tac  uint8

	divClock  clock
	timaClock clock

	irq *interrupts.Service
}

// NewController returns a new timer Controller raising interrupts on
// the given service.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		divClock:  newClock(divPeriod),
		timaClock: newClock(tacPeriods[0]),
		irq:       irq,
	}
}

// Read returns the value of the given timer register.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case DIV:
		return c.div
	case TIMA:
		return c.tima
	case TMA:
		return c.tma
	case TAC:
		return c.tac
	}
	return 0xFF
}

// Write sets the given timer register. Any write to DIV resets it, and
// its accumulator, to zero. Changing TAC's clock select resets the
// TIMA accumulator and reloads TIMA from TMA.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case DIV:
		c.div = 0
		c.divClock.reset()
	case TIMA:
		c.tima = value
	case TMA:
		c.tma = value
	case TAC:
		if c.tac&0x03 != value&0x03 {
			c.timaClock.reset()
			c.timaClock.period = tacPeriods[value&0x03]
			c.tima = c.tma
		}
		c.tac = value
	}
}

// Cycle advances the timer by the given number of T-cycles.
func (c *Controller) Cycle(ticks uint32) {
	c.div += uint8(c.divClock.tick(ticks))

	// TAC bit 2 gates TIMA entirely; DIV runs regardless.
	if c.tac&0x04 == 0 {
		return
	}
	for n := c.timaClock.tick(ticks); n > 0; n-- {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}
