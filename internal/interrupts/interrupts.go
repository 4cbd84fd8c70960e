// Package interrupts holds the interrupt enable and request
// registers shared by the bus and the processor.
package interrupts

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	// VBlankFlag is requested every time the video unit
	// enters its vertical blanking period.
	VBlankFlag = types.Bit0
	// LCDFlag is requested by the STAT register (types.STAT)
	// when one of its enabled conditions is met.
	LCDFlag = types.Bit1
	// TimerFlag is requested when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is requested when a serial transfer completes.
	SerialFlag = types.Bit3
	// JoypadFlag is requested when any of the selected
	// keypad lines goes from high to low.
	JoypadFlag = types.Bit4
)

// unusedFlagBits always read back as set from types.IF.
const unusedFlagBits = 0xE0

// Service is the pair of interrupt registers. Collaborators
// raise bits in Flag, the processor acknowledges them through
// Vector when they are also set in Enable.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// ReadFlag returns types.IF as seen on the bus.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | unusedFlagBits
}

// WriteFlag stores v into types.IF.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v
}

// Request ORs flag into the pending requests.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Vector returns the vector of the highest priority pending
// and enabled interrupt, clearing its request, or 0 if there
// is none.
func (s *Service) Vector() uint16 {
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// Reset clears both registers.
func (s *Service) Reset() {
	s.Flag, s.Enable = 0, 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
