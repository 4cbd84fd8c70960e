// Package apu models the register side of the Game Boy audio
// processing unit: the sound registers with their read masks,
// wave RAM, the power switch and the length counters driven
// by the frame sequencer. No samples are produced.
package apu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	// frameSequencerPeriod is 4194304 / 512 clock cycles.
	frameSequencerPeriod = 8192

	first = types.NR10
	last  = 0xFF3F
)

// readMasks holds the bits of each register in NR10..NR52
// that always read back as set.
var readMasks = [...]uint8{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10-NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // unused, NR21-NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30-NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // unused, NR41-NR44
	0x00, 0x00, 0x70, // NR50-NR52
}

// APU is the audio processing unit.
type APU struct {
	enabled bool
	regs    [last - first + 1]uint8

	channels [4]*channel

	frameSequencerCounter uint32
	frameSequencerStep    uint8
}

// NewAPU returns a powered off APU.
func NewAPU() *APU {
	a := &APU{}
	for i := range a.channels {
		a.channels[i] = newChannel(uint8(1)<<i, i == 2)
	}
	return a
}

// Reset powers the APU off and clears wave RAM.
func (a *APU) Reset() {
	a.powerOff()
	for i := range a.regs {
		a.regs[i] = 0
	}
	a.frameSequencerCounter = 0
}

// Read returns the value of the sound register at address.
func (a *APU) Read(address uint16) uint8 {
	if address < first || address > last {
		return 0xFF
	}
	offset := address - first
	switch {
	case address == types.NR52:
		v := uint8(0x70)
		if a.enabled {
			v |= types.Bit7
		}
		for _, c := range a.channels {
			if c.enabled {
				v |= c.channelBit
			}
		}
		return v
	case address >= types.WaveRAM:
		return a.regs[offset]
	case int(offset) < len(readMasks):
		return a.regs[offset] | readMasks[offset]
	}
	return 0xFF
}

// Write writes value to the sound register at address. While
// powered off only NR52 and wave RAM accept writes.
func (a *APU) Write(address uint16, value uint8) {
	if address < first || address > last {
		return
	}
	offset := address - first
	switch {
	case address == types.NR52:
		if value&types.Bit7 == 0 {
			a.powerOff()
		} else if !a.enabled {
			a.enabled = true
			a.frameSequencerStep = 0
		}
		return
	case address >= types.WaveRAM:
		a.regs[offset] = value
		return
	case int(offset) >= len(readMasks), !a.enabled:
		return
	}

	a.regs[offset] = value
	a.writeChannel(address, value)
}

func (a *APU) writeChannel(address uint16, value uint8) {
	switch address {
	case types.NR11, types.NR21, types.NR31, types.NR41:
		a.channelFor(address).setLength(value)
	case types.NR12, types.NR22, types.NR42:
		a.channelFor(address).setDAC(value&0xF8 != 0)
	case types.NR30:
		a.channels[2].setDAC(value&types.Bit7 != 0)
	case types.NR14, types.NR24, types.NR34, types.NR44:
		a.channelFor(address).setNRx4(value)
	}
}

// channelFor returns the channel owning the register at address.
func (a *APU) channelFor(address uint16) *channel {
	return a.channels[(address-first)/5]
}

func (a *APU) powerOff() {
	a.enabled = false
	for i := types.NR10 - first; i < types.NR52-first; i++ {
		a.regs[i] = 0
	}
	for _, c := range a.channels {
		c.reset()
	}
}

// Advance moves the frame sequencer forward by ticks clock cycles.
func (a *APU) Advance(ticks uint32) {
	if !a.enabled {
		return
	}
	a.frameSequencerCounter += ticks
	for a.frameSequencerCounter >= frameSequencerPeriod {
		a.frameSequencerCounter -= frameSequencerPeriod

		// length counters are clocked on every other step
		if a.frameSequencerStep&1 == 0 {
			for _, c := range a.channels {
				c.lengthStep()
			}
		}
		a.frameSequencerStep = (a.frameSequencerStep + 1) & 7
	}
}

var _ types.Stater = (*APU)(nil)

// Load implements the types.Stater interface.
func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	s.ReadData(a.regs[:])
	a.frameSequencerCounter = s.Read32()
	a.frameSequencerStep = s.Read8()
	for _, c := range a.channels {
		c.load(s)
	}
}

// Save implements the types.Stater interface.
func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	s.WriteData(a.regs[:])
	s.Write32(a.frameSequencerCounter)
	s.Write8(a.frameSequencerStep)
	for _, c := range a.channels {
		c.save(s)
	}
}
