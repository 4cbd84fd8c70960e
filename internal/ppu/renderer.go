package ppu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// clearFrame fills the frame with the lightest shade, as seen
// when the LCD is off.
func (p *PPU) clearFrame() {
	for i := 0; i < FrameSize; i += 3 {
		copy(p.frame[i:i+3], greyShades[0][:])
	}
}

// renderLine draws the background and window for the current
// line into the frame.
func (p *PPU) renderLine() {
	if p.ly >= ScreenHeight {
		return
	}

	// on monochrome hardware LCDC.0 blanks the background and window
	if !p.color && p.lcdc&types.Bit0 == 0 {
		row := int(p.ly) * ScreenWidth * 3
		for x := 0; x < ScreenWidth; x++ {
			copy(p.frame[row+x*3:row+x*3+3], greyShades[0][:])
		}
		return
	}

	windowVisible := p.lcdc&types.Bit5 != 0 && p.wy <= p.ly && p.wx <= 166
	drewWindow := false

	for x := uint8(0); x < ScreenWidth; x++ {
		var mapBase uint16
		var px, py uint8
		if windowVisible && x+7 >= p.wx {
			mapBase = p.tileMap(p.lcdc&types.Bit6 != 0)
			px, py = x+7-p.wx, p.windowLine
			drewWindow = true
		} else {
			mapBase = p.tileMap(p.lcdc&types.Bit3 != 0)
			px, py = x+p.scx, p.ly+p.scy
		}

		p.plot(x, p.pixel(mapBase, px, py))
	}

	if drewWindow {
		p.windowLine++
	}
}

// tileMap returns the offset into VRAM of the selected tile map.
func (p *PPU) tileMap(high bool) uint16 {
	if high {
		return 0x1C00
	}
	return 0x1800
}

// pixel returns the colour at (px, py) of the 256x256 map
// starting at mapBase.
func (p *PPU) pixel(mapBase uint16, px, py uint8) [3]uint8 {
	entry := mapBase + uint16(py/8)*32 + uint16(px/8)
	tile := p.vram[0][entry]

	var attributes uint8
	if p.color {
		attributes = p.vram[1][entry]
	}
	bank := attributes >> 3 & 1

	row, col := py%8, px%8
	if attributes&types.Bit6 != 0 {
		row = 7 - row
	}
	if attributes&types.Bit5 != 0 {
		col = 7 - col
	}

	var address uint16
	if p.lcdc&types.Bit4 != 0 {
		address = uint16(tile) * 16
	} else {
		address = uint16(0x1000 + int16(int8(tile))*16)
	}
	address += uint16(row) * 2

	lo, hi := p.vram[bank][address], p.vram[bank][address+1]
	shift := 7 - col
	colour := (hi>>shift&1)<<1 | lo>>shift&1

	if p.color {
		return p.bgPalette.Colour(attributes&7, colour)
	}
	return greyShades[p.bgp>>(colour*2)&3]
}

func (p *PPU) plot(x uint8, rgb [3]uint8) {
	i := (int(p.ly)*ScreenWidth + int(x)) * 3
	p.frame[i], p.frame[i+1], p.frame[i+2] = rgb[0], rgb[1], rgb[2]
}
