package types

import (
	"fmt"
	"strings"
)

// Mode is the hardware a session behaves as.
type Mode int

const (
	// Classic behaves as the first monochrome hardware.
	Classic Mode = iota
	// Color behaves as colour hardware running a colour aware cartridge.
	Color
	// ColorAsClassic is colour hardware running a cartridge
	// that doesn't declare colour support. Only the
	// undocumented registers are visible.
	ColorAsClassic
)

var modeNames = map[Mode]string{
	Classic:        "classic",
	Color:          "color",
	ColorAsClassic: "color-as-classic",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsColorHardware reports whether the mode runs on colour hardware,
// regardless of what the cartridge supports.
func (m Mode) IsColorHardware() bool {
	return m != Classic
}

// ParseMode converts a name ("classic", "dmg", "color", "cgb") into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "classic", "dmg":
		return Classic, nil
	case "color", "colour", "cgb":
		return Color, nil
	}
	return Classic, fmt.Errorf("unknown mode %q", s)
}

// ModelRegisters holds the post boot processor registers
// (A, F, B, C, D, E, H, L) for each mode.
var ModelRegisters = map[Mode][8]uint8{
	Classic:        {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	Color:          {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
	ColorAsClassic: {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

// InitialIO holds the I/O register values written through
// the bus at power on, in the order they are written.
var InitialIO = []struct {
	Address HardwareAddress
	Value   uint8
}{
	{P1, 0xCF},
	{TIMA, 0x00},
	{TMA, 0x00},
	{TAC, 0x00},
	// the APU ignores its other registers while powered off
	{NR52, 0xF1},
	{NR10, 0x80},
	{NR11, 0xBF},
	{NR12, 0xF3},
	{NR14, 0xBF},
	{NR21, 0x3F},
	{NR22, 0x00},
	{NR24, 0xBF},
	{NR30, 0x7F},
	{NR31, 0xFF},
	{NR32, 0x9F},
	{NR34, 0xFF},
	{NR41, 0xFF},
	{NR42, 0x00},
	{NR43, 0x00},
	{NR44, 0xBF},
	{NR50, 0x77},
	{NR51, 0xF3},
	{LCDC, 0x91},
	{SCY, 0x00},
	{SCX, 0x00},
	{LYC, 0x00},
	{BGP, 0xFC},
	{OBP0, 0xFF},
	{OBP1, 0xFF},
	{WY, 0x00},
	{WX, 0x00},
}
