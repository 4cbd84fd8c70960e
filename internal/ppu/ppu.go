// Package ppu provides the video unit: video memory, the LCD
// registers, the mode timing of each line and a background
// renderer producing one RGB frame per refresh.
package ppu

import (
	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
	// FrameSize is the length of FrameData, 3 bytes per pixel.
	FrameSize = ScreenWidth * ScreenHeight * 3
)

// line timing, in dots
const (
	oamDots      = 80
	transferDots = 172
	lineDots     = 456
	lastLine     = 153
)

const (
	// ModeHBlank (Mode 0) - Horizontal Blanking Period
	ModeHBlank = iota
	// ModeVBlank (Mode 1) - Vertical Blanking Period, LY 144-153
	ModeVBlank
	// ModeOAM (Mode 2) - OAM Scan, 80 dots
	ModeOAM
	// ModeVRAM (Mode 3) - Pixel Transfer, 172 dots
	ModeVRAM
)

// PPU is the video unit.
type PPU struct {
	vram [2][0x2000]uint8
	oam  [0xA0]uint8
	vbk  uint8

	color bool

	lcdc, stat    uint8
	scy, scx      uint8
	ly, lyc       uint8
	bgp           uint8
	obp0, obp1    uint8
	wy, wx        uint8
	windowLine    uint8
	mode          uint8
	dots          uint32
	bgPalette     CGBPalette
	objPalette    CGBPalette
	frame         [FrameSize]uint8
	statLine      bool
	vblank        bool
	updated       bool
	hblankPending bool

	interrupt uint8
}

// New returns a video unit with the LCD off. When color is
// set, the VRAM bank and colour palette registers are
// available.
func New(color bool) *PPU {
	p := &PPU{color: color}
	p.Reset()
	return p
}

// Reset clears video memory and the LCD registers.
func (p *PPU) Reset() {
	color := p.color
	*p = PPU{color: color}
	p.bgPalette.Reset()
	p.objPalette.Reset()
	p.clearFrame()
}

func (p *PPU) enabled() bool {
	return p.lcdc&types.Bit7 != 0
}

// Read returns the value at address, which may be in VRAM,
// OAM or one of the LCD registers.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		return p.vram[p.vbk][address&0x1FFF]
	case address >= 0xFE00 && address <= 0xFE9F:
		return p.oam[address&0xFF]
	}

	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		v := p.stat&0x78 | types.Bit7
		if p.ly == p.lyc {
			v |= types.Bit2
		}
		if p.enabled() {
			v |= p.mode
		}
		return v
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}

	if !p.color {
		return 0xFF
	}
	switch address {
	case types.VBK:
		return p.vbk | 0xFE
	case types.BCPS:
		return p.bgPalette.GetIndex()
	case types.BCPD:
		return p.bgPalette.Read()
	case types.OCPS:
		return p.objPalette.GetIndex()
	case types.OCPD:
		return p.objPalette.Read()
	}
	return 0xFF
}

// Write writes value to address, which may be in VRAM, OAM or
// one of the LCD registers. LY is read only.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		p.vram[p.vbk][address&0x1FFF] = value
		return
	case address >= 0xFE00 && address <= 0xFE9F:
		p.oam[address&0xFF] = value
		return
	}

	switch address {
	case types.LCDC:
		p.writeLCDC(value)
	case types.STAT:
		p.stat = value & 0x78
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LYC:
		p.lyc = value
		p.updateStatLine()
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}

	if !p.color {
		return
	}
	switch address {
	case types.VBK:
		p.vbk = value & types.Bit0
	case types.BCPS:
		p.bgPalette.SetIndex(value)
	case types.BCPD:
		p.bgPalette.Write(value)
	case types.OCPS:
		p.objPalette.SetIndex(value)
	case types.OCPD:
		p.objPalette.Write(value)
	}
}

func (p *PPU) writeLCDC(value uint8) {
	wasEnabled := p.enabled()
	p.lcdc = value

	switch {
	case wasEnabled && !p.enabled():
		p.ly, p.dots, p.mode = 0, 0, ModeHBlank
		p.hblankPending = false
		p.windowLine = 0
		p.clearFrame()
	case !wasEnabled && p.enabled():
		p.dots = 0
		p.setMode(ModeOAM)
		p.updateStatLine()
	}
}

// Advance moves the video unit forward by ticks dots. Nothing
// happens while the LCD is off.
func (p *PPU) Advance(ticks uint32) {
	if !p.enabled() {
		return
	}

	p.dots += ticks
	for {
		switch p.mode {
		case ModeOAM:
			if p.dots < oamDots {
				return
			}
			p.setMode(ModeVRAM)
		case ModeVRAM:
			if p.dots < oamDots+transferDots {
				return
			}
			p.renderLine()
			p.setMode(ModeHBlank)
		case ModeHBlank:
			if p.dots < lineDots {
				return
			}
			p.dots -= lineDots
			p.setLY(p.ly + 1)
			if p.ly == ScreenHeight {
				p.setMode(ModeVBlank)
				p.interrupt |= interrupts.VBlankFlag
				p.vblank = true
				p.updated = true
			} else {
				p.setMode(ModeOAM)
			}
		case ModeVBlank:
			if p.dots < lineDots {
				return
			}
			p.dots -= lineDots
			if p.ly == lastLine {
				p.windowLine = 0
				p.setLY(0)
				p.setMode(ModeOAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

func (p *PPU) setMode(mode uint8) {
	p.mode = mode
	p.hblankPending = mode == ModeHBlank
	p.updateStatLine()
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.updateStatLine()
}

// updateStatLine requests an LCD interrupt on the rising edge
// of the OR of every enabled STAT condition.
func (p *PPU) updateStatLine() {
	line := false
	if p.enabled() {
		switch p.mode {
		case ModeHBlank:
			line = p.stat&types.Bit3 != 0
		case ModeVBlank:
			line = p.stat&types.Bit4 != 0
		case ModeOAM:
			line = p.stat&types.Bit5 != 0
		}
		if p.stat&types.Bit6 != 0 && p.ly == p.lyc {
			line = true
		}
	}

	if line && !p.statLine {
		p.interrupt |= interrupts.LCDFlag
	}
	p.statLine = line
}

// EnteredBlanking reports, once, that the vertical blanking
// period has started since the last call.
func (p *PPU) EnteredBlanking() bool {
	v := p.vblank
	p.vblank = false
	return v
}

// FrameReady reports, once, that a new frame has been
// completed since the last call.
func (p *PPU) FrameReady() bool {
	v := p.updated
	p.updated = false
	return v
}

// AcceptsDMARow reports, once per horizontal blanking period,
// that a VRAM DMA row may be transferred.
func (p *PPU) AcceptsDMARow() bool {
	v := p.hblankPending
	p.hblankPending = false
	return v
}

// TakeInterrupt returns the pending interrupt requests and
// clears them.
func (p *PPU) TakeInterrupt() uint8 {
	v := p.interrupt
	p.interrupt = 0
	return v
}

// FrameData returns a copy of the last rendered frame, as
// ScreenHeight rows of ScreenWidth RGB pixels.
func (p *PPU) FrameData() []byte {
	data := make([]byte, FrameSize)
	copy(data, p.frame[:])
	return data
}

var _ types.Stater = (*PPU)(nil)

// Load implements the types.Stater interface.
func (p *PPU) Load(s *types.State) {
	s.ReadData(p.vram[0][:])
	s.ReadData(p.vram[1][:])
	s.ReadData(p.oam[:])
	p.vbk = s.Read8()
	p.lcdc = s.Read8()
	p.stat = s.Read8()
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.bgp = s.Read8()
	p.obp0 = s.Read8()
	p.obp1 = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.windowLine = s.Read8()
	p.mode = s.Read8()
	p.dots = s.Read32()
	p.bgPalette.Load(s)
	p.objPalette.Load(s)
	p.statLine = s.ReadBool()
	p.vblank = s.ReadBool()
	p.updated = s.ReadBool()
	p.hblankPending = s.ReadBool()
	p.interrupt = s.Read8()
}

// Save implements the types.Stater interface.
func (p *PPU) Save(s *types.State) {
	s.WriteData(p.vram[0][:])
	s.WriteData(p.vram[1][:])
	s.WriteData(p.oam[:])
	s.Write8(p.vbk)
	s.Write8(p.lcdc)
	s.Write8(p.stat)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.bgp)
	s.Write8(p.obp0)
	s.Write8(p.obp1)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.windowLine)
	s.Write8(p.mode)
	s.Write32(p.dots)
	p.bgPalette.Save(s)
	p.objPalette.Save(s)
	s.WriteBool(p.statLine)
	s.WriteBool(p.vblank)
	s.WriteBool(p.updated)
	s.WriteBool(p.hblankPending)
	s.Write8(p.interrupt)
}
