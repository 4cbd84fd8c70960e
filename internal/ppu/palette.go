package ppu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// greyShades are the four shades of the monochrome LCD, from
// lightest to darkest.
var greyShades = [4][3]uint8{
	{0xFF, 0xFF, 0xFF},
	{0xC0, 0xC0, 0xC0},
	{0x60, 0x60, 0x60},
	{0x00, 0x00, 0x00},
}

// CGBPalette is one of the two colour palette memories,
// holding 8 palettes of 4 RGB555 colours, addressed through an
// index register with optional auto increment.
type CGBPalette struct {
	ram          [64]uint8
	Index        uint8
	Incrementing bool
}

// Reset sets every colour to white.
func (p *CGBPalette) Reset() {
	for i := range p.ram {
		p.ram[i] = 0xFF
	}
	p.Index = 0
	p.Incrementing = false
}

// SetIndex updates the index of the palette.
func (p *CGBPalette) SetIndex(value uint8) {
	p.Index = value & 0x3F
	p.Incrementing = value&types.Bit7 != 0
}

// GetIndex returns the index register. Bit 6 reads as set.
func (p *CGBPalette) GetIndex() uint8 {
	v := p.Index | types.Bit6
	if p.Incrementing {
		v |= types.Bit7
	}
	return v
}

// Read returns the byte at the current index.
func (p *CGBPalette) Read() uint8 {
	return p.ram[p.Index]
}

// Write stores value at the current index, incrementing it
// afterwards if enabled.
func (p *CGBPalette) Write(value uint8) {
	p.ram[p.Index] = value
	if p.Incrementing {
		p.Index = (p.Index + 1) & 0x3F
	}
}

// Colour returns colour c of palette pal as 8-bit RGB.
func (p *CGBPalette) Colour(pal, c uint8) [3]uint8 {
	i := (pal&7)*8 + (c&3)*2
	rgb := uint16(p.ram[i]) | uint16(p.ram[i+1])<<8
	return [3]uint8{
		scale5(uint8(rgb & 0x1F)),
		scale5(uint8(rgb >> 5 & 0x1F)),
		scale5(uint8(rgb >> 10 & 0x1F)),
	}
}

// scale5 expands a 5-bit colour channel to 8 bits.
func scale5(v uint8) uint8 {
	return v<<3 | v>>2
}

func (p *CGBPalette) Load(s *types.State) {
	s.ReadData(p.ram[:])
	p.Index = s.Read8()
	p.Incrementing = s.ReadBool()
}

func (p *CGBPalette) Save(s *types.State) {
	s.WriteData(p.ram[:])
	s.Write8(p.Index)
	s.WriteBool(p.Incrementing)
}
