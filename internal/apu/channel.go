package apu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

type channel struct {
	enabled    bool
	dacEnabled bool

	// NRx1
	lengthCounter uint
	maxLength     uint

	// NRx4
	lengthCounterEnabled bool

	channelBit uint8
}

func newChannel(bit uint8, wave bool) *channel {
	c := &channel{channelBit: bit, maxLength: 64}
	if wave {
		c.maxLength = 256
	}
	return c
}

func (c *channel) reset() {
	c.enabled = false
	c.dacEnabled = false
	c.lengthCounter = 0
	c.lengthCounterEnabled = false
}

func (c *channel) setLength(v uint8) {
	if c.maxLength == 256 {
		c.lengthCounter = c.maxLength - uint(v)
	} else {
		c.lengthCounter = c.maxLength - uint(v&0x3F)
	}
}

// setDAC powers the channel's DAC. Turning the DAC off also
// stops the channel.
func (c *channel) setDAC(on bool) {
	c.dacEnabled = on
	if !on {
		c.enabled = false
	}
}

func (c *channel) setNRx4(v uint8) {
	c.lengthCounterEnabled = v&types.Bit6 != 0
	if v&types.Bit7 != 0 {
		if c.lengthCounter == 0 {
			c.lengthCounter = c.maxLength
		}
		c.enabled = c.dacEnabled
	}
}

func (c *channel) lengthStep() {
	if c.lengthCounterEnabled && c.lengthCounter > 0 {
		c.lengthCounter--
		if c.lengthCounter == 0 {
			c.enabled = false
		}
	}
}

func (c *channel) load(s *types.State) {
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.lengthCounter = uint(s.Read16())
	c.lengthCounterEnabled = s.ReadBool()
}

func (c *channel) save(s *types.State) {
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write16(uint16(c.lengthCounter))
	s.WriteBool(c.lengthCounterEnabled)
}
