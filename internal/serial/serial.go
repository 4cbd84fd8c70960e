// Package serial provides the serial port controller. A
// transfer exchanges the byte in types.SB with whatever is
// attached to the other end of the link.
package serial

import (
	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

// Controller is the serial controller. Transfers clocked
// internally complete immediately: the attached Callback
// receives the outgoing byte and its reply is shifted in. With
// nothing attached, the line floats high and 0xFF is received.
type Controller struct {
	data    uint8 // types.SB
	control uint8 // types.SC

	// Callback is the other end of the link, nil when unplugged.
	Callback Callback

	// Interrupt holds a pending types.IF request, collected
	// and cleared by the bus.
	Interrupt uint8
}

// NewController creates a new Controller with the given
// Callback attached, which may be nil.
func NewController(cb Callback) *Controller {
	return &Controller{Callback: cb}
}

// Reset clears the transfer registers. The attached Callback
// is kept.
func (c *Controller) Reset() {
	c.data, c.control, c.Interrupt = 0, 0, 0
}

// Read returns the value of the serial register at address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		return c.control | 0x7E
	}
	return 0xFF
}

// Write writes value to the serial register at address.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.control = value
		if value&types.Bit7 != 0 && value&types.Bit0 != 0 {
			c.transfer()
		}
	}
}

func (c *Controller) transfer() {
	received := uint8(0xFF)
	if c.Callback != nil {
		if v, ok := c.Callback(c.data); ok {
			received = v
		}
	}

	c.data = received
	c.control &^= types.Bit7
	c.Interrupt |= interrupts.SerialFlag
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
	c.Interrupt = s.Read8()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
	s.Write8(c.Interrupt)
}
