package types

import (
	"errors"
)

// ErrShortState is reported by State.Err when a read ran
// past the end of the underlying data.
var ErrShortState = errors.New("state: unexpected end of data")

// Resettable is an interface that allows an object to be reset.
type Resettable interface {
	Reset() // Reset the state of the object
}

// State is a little-endian binary buffer used to save and
// load the emulated machine between runs.
//
// Reads past the end of the data yield zero values and
// record ErrShortState, so a Load can be written as a
// straight sequence of reads and checked once afterwards.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x10000),
	}
}

// StateFromBytes creates a new state reading from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of unread bytes.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil if fewer remain.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.Remaining() < n {
		s.err = ErrShortState
		s.readPosition = len(s.raw)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	return uint64(lo) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData fills p from the state.
func (s *State) ReadData(p []byte) {
	b := s.take(len(p))
	if b == nil {
		return
	}
	copy(p, b)
}

func (s *State) Bytes() []byte {
	return s.raw
}
