// Package cartridge parses cartridge images and provides the
// memory bank controllers sitting behind the ROM (0x0000-0x7FFF)
// and external RAM (0xA000-0xBFFF) windows.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbmirror/internal/types"
)

var (
	// ErrTooSmall is returned for images shorter than the header.
	ErrTooSmall = errors.New("image too small to hold a header")
	// ErrChecksum is returned when the header checksum doesn't match.
	ErrChecksum = errors.New("header checksum mismatch")
	// ErrUnsupported is returned for cartridge types without a controller.
	ErrUnsupported = errors.New("unsupported cartridge type")
	// ErrColorOnly is returned when a cartridge requiring colour
	// hardware is run in classic mode.
	ErrColorOnly = errors.New("cartridge requires colour hardware")
	// ErrRAMSize is returned by LoadRAM when the data doesn't
	// match the cartridge's RAM.
	ErrRAMSize = errors.New("ram size mismatch")
)

// HeaderError describes why a cartridge image was refused.
type HeaderError struct {
	Title string
	Err   error
	Got   uint8
	Want  uint8
}

func (e *HeaderError) Error() string {
	switch {
	case errors.Is(e.Err, ErrChecksum):
		return fmt.Sprintf("cartridge %q: %v: got %02X, want %02X", e.Title, e.Err, e.Got, e.Want)
	case errors.Is(e.Err, ErrUnsupported):
		return fmt.Sprintf("cartridge %q: %v %s", e.Title, e.Err, Type(e.Got))
	}
	return fmt.Sprintf("cartridge %q: %v", e.Title, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// Controller is a cartridge as seen by the bus.
type Controller interface {
	ReadROM(address uint16) uint8
	WriteROM(address uint16, value uint8)
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, value uint8)

	// Name returns the title from the header.
	Name() string
	IsBatteryBacked() bool
	// DumpRAM returns a copy of the external RAM.
	DumpRAM() []byte
	// LoadRAM replaces the external RAM with data.
	LoadRAM(data []byte) error
	// RAMUpdated reports, once, whether RAM was written since
	// the last call.
	RAMUpdated() bool

	Header() *Header
	// Reset restores the power on banking. RAM and the clock
	// are kept.
	types.Resettable
	types.Stater
}

// Clock provides the number of elapsed emulated cycles, at the
// base clock rate.
type Clock interface {
	Cycle() uint64
}

// Clocked is implemented by controllers that track time.
type Clocked interface {
	AttachClock(Clock)
}

// New parses rom and returns the matching controller. The
// header checksum is verified unless skipChecksum is set.
func New(rom []byte, skipChecksum bool) (Controller, error) {
	if len(rom) < 0x150 {
		return nil, &HeaderError{Err: ErrTooSmall}
	}

	header := parseHeader(rom)
	if !skipChecksum {
		if sum := headerChecksum(rom); sum != header.HeaderChecksum {
			return nil, &HeaderError{Title: header.Title, Err: ErrChecksum, Got: header.HeaderChecksum, Want: sum}
		}
	}

	rom = padROM(rom)
	b := &base{header: &header}

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return newROMCartridge(rom, b), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMemoryBankedCartridge1(rom, b), nil
	case MBC2, MBC2BATT:
		return newMemoryBankedCartridge2(rom, b), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return newMemoryBankedCartridge3(rom, b), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBAT:
		return newMemoryBankedCartridge5(rom, b), nil
	}

	return nil, &HeaderError{Title: header.Title, Err: ErrUnsupported, Got: uint8(header.CartridgeType)}
}

// padROM extends rom to a whole number of 16kB banks, and at
// least two, filling with 0xFF.
func padROM(rom []byte) []byte {
	size := (len(rom) + 0x3FFF) &^ 0x3FFF
	if size < 0x8000 {
		size = 0x8000
	}
	if size == len(rom) {
		return rom
	}
	padded := make([]byte, size)
	copy(padded, rom)
	for i := len(rom); i < size; i++ {
		padded[i] = 0xFF
	}
	return padded
}

// base holds what every controller shares: the header and the
// external RAM.
type base struct {
	header     *Header
	ram        []byte
	ramUpdated bool
}

func (b *base) Header() *Header {
	return b.header
}

func (b *base) Name() string {
	return b.header.Title
}

func (b *base) IsBatteryBacked() bool {
	return b.header.CartridgeType.battery()
}

func (b *base) DumpRAM() []byte {
	data := make([]byte, len(b.ram))
	copy(data, b.ram)
	return data
}

func (b *base) LoadRAM(data []byte) error {
	if len(data) != len(b.ram) {
		return fmt.Errorf("cartridge %q: %w: got %d bytes, want %d", b.header.Title, ErrRAMSize, len(data), len(b.ram))
	}
	copy(b.ram, data)
	return nil
}

func (b *base) RAMUpdated() bool {
	v := b.ramUpdated
	b.ramUpdated = false
	return v
}

// writeRAM stores value at offset, marking RAM as updated.
func (b *base) writeRAM(offset int, value uint8) {
	if offset < len(b.ram) {
		b.ram[offset] = value
		b.ramUpdated = true
	}
}

// readRAM returns the byte at offset, or 0xFF past the end of RAM.
func (b *base) readRAM(offset int) uint8 {
	if offset < len(b.ram) {
		return b.ram[offset]
	}
	return 0xFF
}

// bankCount returns the number of size byte banks in data, at least 1.
func bankCount(data []byte, size int) int {
	if n := len(data) / size; n > 0 {
		return n
	}
	return 1
}
