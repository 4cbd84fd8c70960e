// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

// bits holds the divider bit whose falling edge clocks
// TIMA, for each value of TAC & 0b11.
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. TIMA is incremented on
// each falling edge of the divider bit selected by TAC.
type Controller struct {
	divider    uint16
	currentBit uint16

	tima uint8
	tma  uint8
	tac  uint8

	Enabled bool

	// Interrupt holds a pending types.IF request, collected
	// and cleared by the bus.
	Interrupt uint8
}

// NewController returns a new timer controller.
func NewController() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Reset returns the timer to its power on state.
func (c *Controller) Reset() {
	c.divider = 0
	c.tima, c.tma, c.tac = 0, 0, 0
	c.currentBit = bits[0]
	c.Enabled = false
	c.Interrupt = 0
}

// Read returns the value of the timer register at address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.divider >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write writes value to the timer register at address.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// resetting the divider can produce a falling edge
		if c.Enabled && c.divider&c.currentBit != 0 {
			c.increment()
		}
		c.divider = 0
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		wasEnabled := c.Enabled
		oldBit := c.currentBit

		c.tac = value & 0x07
		c.currentBit = bits[value&0b11]
		c.Enabled = value&types.Bit2 != 0

		c.timaGlitch(wasEnabled, oldBit)
	}
}

// Advance moves the timer forward by ticks clock cycles.
func (c *Controller) Advance(ticks uint32) {
	for ; ticks > 0; ticks-- {
		old := c.divider
		c.divider++

		// detect a falling edge
		if c.Enabled && old&c.currentBit != 0 && c.divider&c.currentBit == 0 {
			c.increment()
		}
	}
}

func (c *Controller) increment() {
	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.Interrupt |= interrupts.TimerFlag
	}
}

// timaGlitch handles the extra increment that occurs when
// changing TAC moves the selected bit from high to low.
func (c *Controller) timaGlitch(wasEnabled bool, oldBit uint16) {
	if !wasEnabled || c.divider&oldBit == 0 {
		return
	}
	if !c.Enabled || c.divider&c.currentBit == 0 {
		c.increment()
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.divider = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.Interrupt = s.Read8()

	c.currentBit = bits[c.tac&0b11]
	c.Enabled = c.tac&types.Bit2 != 0
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.divider)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.Write8(c.Interrupt)
}
