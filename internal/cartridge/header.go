package cartridge

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gbmirror/internal/types"
)

// Flag is the colour compatibility declared at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the cartridge type declared at 0x0147.
type Type uint8

const (
	ROM              Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBATT      Type = 0x03
	MBC2             Type = 0x05
	MBC2BATT         Type = 0x06
	ROMRAM           Type = 0x08
	ROMRAMBATT       Type = 0x09
	MBC3TIMERBATT    Type = 0x0F
	MBC3TIMERRAMBATT Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBATT      Type = 0x13
	MBC5             Type = 0x19
	MBC5RAM          Type = 0x1A
	MBC5RAMBATT      Type = 0x1B
	MBC5RUMBLE       Type = 0x1C
	MBC5RUMBLERAM    Type = 0x1D
	MBC5RUMBLERAMBAT Type = 0x1E
)

var typeNames = map[Type]string{
	ROM:              "ROM",
	MBC1:             "MBC1",
	MBC1RAM:          "MBC1+RAM",
	MBC1RAMBATT:      "MBC1+RAM+BATTERY",
	MBC2:             "MBC2",
	MBC2BATT:         "MBC2+BATTERY",
	ROMRAM:           "ROM+RAM",
	ROMRAMBATT:       "ROM+RAM+BATTERY",
	MBC3TIMERBATT:    "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT: "MBC3+TIMER+RAM+BATTERY",
	MBC3:             "MBC3",
	MBC3RAM:          "MBC3+RAM",
	MBC3RAMBATT:      "MBC3+RAM+BATTERY",
	MBC5:             "MBC5",
	MBC5RAM:          "MBC5+RAM",
	MBC5RAMBATT:      "MBC5+RAM+BATTERY",
	MBC5RUMBLE:       "MBC5+RUMBLE",
	MBC5RUMBLERAM:    "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBAT: "MBC5+RUMBLE+RAM+BATTERY",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%02X)", uint8(t))
}

// battery reports whether cartridges of this type keep RAM
// across power cycles.
func (t Type) battery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT,
		MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBAT:
		return true
	}
	return false
}

// Header represents the header of a cartridge, located at the
// address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - colour compatibility. In older cartridges this byte is
	// part of the title.
	CartridgeGBMode Flag
	// CGBFlag is the raw value of 0x0143.
	CGBFlag uint8

	SGBFlag        bool
	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// parseHeader parses the header of rom, which must be at least
// 0x150 bytes long.
func parseHeader(rom []byte) Header {
	header := rom[0x100:0x150]
	h := Header{CGBFlag: header[0x43]}

	switch {
	case header[0x43] == 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	case header[0x43]&0x80 != 0:
		h.CartridgeGBMode = FlagSupportsCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// the last title byte is only part of it on DMG cartridges
	title := header[0x34:0x44]
	if h.CartridgeGBMode != FlagOnlyDMG {
		title = header[0x34:0x43]
	}
	h.Title = cleanTitle(title)

	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])
	// 32kB x (1 << n)
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramMAP[header[0x49]]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// cleanTitle stops at the first NUL and keeps printable ASCII.
func cleanTitle(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		if c == 0 {
			break
		}
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// headerChecksum computes the checksum of 0x0134-0x014C.
func headerChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	return x
}

// GameboyColor reports whether the cartridge declares colour support.
func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode != FlagOnlyDMG
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}

// Mode resolves the mode a session runs in. On colour hardware
// a cartridge without colour support runs as types.ColorAsClassic,
// and classic hardware refuses colour only cartridges.
func (h *Header) Mode(requested types.Mode) (types.Mode, error) {
	if requested == types.Classic {
		if h.CartridgeGBMode == FlagOnlyCGB {
			return types.Classic, &HeaderError{Title: h.Title, Err: ErrColorOnly}
		}
		return types.Classic, nil
	}
	if h.CGBFlag&0x80 != 0 {
		return types.Color, nil
	}
	return types.ColorAsClassic, nil
}
