// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

// Button represents a physical button on the Game Boy. The
// value of a Button is also its bit in an input mask.
type Button = uint8

const (
	// ButtonRight is the Right button.
	ButtonRight Button = iota
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
	// ButtonA is the A button.
	ButtonA
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// directions and buttons hold the two rows of the key
	// matrix in their lower 4 bits, 0 meaning pressed.
	directions uint8
	buttons    uint8
	data       uint8

	// Interrupt holds a pending types.IF request, collected
	// and cleared by the bus.
	Interrupt uint8
}

// New returns a new joypad state with no keys pressed.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset releases every key and deselects both rows.
func (s *State) Reset() {
	s.directions = 0x0F
	s.buttons = 0x0F
	s.data = 0xFF
	s.Interrupt = 0
}

// Read returns the value of types.P1.
func (s *State) Read() uint8 {
	return s.data
}

// Write updates the select lines of types.P1.
func (s *State) Write(v uint8) {
	s.data = s.data&0xCF | v&0x30
	s.update()
}

// Press presses a button.
func (s *State) Press(button Button) {
	if button < ButtonA {
		s.directions &^= 1 << button
	} else {
		s.buttons &^= 1 << (button - ButtonA)
	}
	s.update()
}

// Release releases a button.
func (s *State) Release(button Button) {
	if button < ButtonA {
		s.directions |= 1 << button
	} else {
		s.buttons |= 1 << (button - ButtonA)
	}
	s.update()
}

// SetMask replaces the state of every key at once, a set
// bit meaning the key is held. Bits 0-3 are the directions
// and 4-7 the buttons, in the order of the Button constants.
func (s *State) SetMask(mask uint8) {
	s.directions = 0x0F &^ (mask & 0x0F)
	s.buttons = 0x0F &^ (mask >> 4)
	s.update()
}

// update latches the selected rows into the lower nibble of
// the register, requesting an interrupt when a line of the
// previously idle nibble goes low.
func (s *State) update() {
	old := s.data & 0x0F
	next := uint8(0x0F)
	if s.data&types.Bit4 == 0 {
		next &= s.directions
	}
	if s.data&types.Bit5 == 0 {
		next &= s.buttons
	}

	if old == 0x0F && next != 0x0F {
		s.Interrupt |= interrupts.JoypadFlag
	}

	s.data = s.data&0xF0 | next
}

var _ types.Stater = (*State)(nil)

// Load implements the types.Stater interface.
func (s *State) Load(st *types.State) {
	s.directions = st.Read8()
	s.buttons = st.Read8()
	s.data = st.Read8()
	s.Interrupt = st.Read8()
}

// Save implements the types.Stater interface.
func (s *State) Save(st *types.State) {
	st.Write8(s.directions)
	st.Write8(s.buttons)
	st.Write8(s.data)
	st.Write8(s.Interrupt)
}
