package ppu

import (
	"testing"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

const frameDots = lineDots * (lastLine + 1)

func TestPPU_LineTiming(t *testing.T) {
	p := New(false)
	p.Write(types.LCDC, 0x91)

	if got := p.Read(types.STAT) & 3; got != ModeOAM {
		t.Fatalf("got mode %d, want %d", got, ModeOAM)
	}
	p.Advance(oamDots)
	if got := p.Read(types.STAT) & 3; got != ModeVRAM {
		t.Errorf("got mode %d, want %d", got, ModeVRAM)
	}
	if p.AcceptsDMARow() {
		t.Errorf("row accepted outside of hblank")
	}
	p.Advance(transferDots)
	if got := p.Read(types.STAT) & 3; got != ModeHBlank {
		t.Errorf("got mode %d, want %d", got, ModeHBlank)
	}
	if !p.AcceptsDMARow() {
		t.Errorf("row not accepted on hblank entry")
	}
	if p.AcceptsDMARow() {
		t.Errorf("row accepted twice in one hblank")
	}
	p.Advance(lineDots - oamDots - transferDots)
	if got := p.Read(types.LY); got != 1 {
		t.Errorf("got LY %d, want %d", got, 1)
	}
}

func TestPPU_StaleHBlank(t *testing.T) {
	tests := []struct {
		name    string
		advance uint32
		mode    uint8
	}{
		{"transfer", lineDots*10 + oamDots + 4, ModeVRAM},
		{"oam", lineDots * 10, ModeOAM},
		{"vblank", lineDots*ScreenHeight + 4, ModeVBlank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(true)
			p.Write(types.LCDC, 0x91)
			p.Advance(tt.advance)

			if got := p.Read(types.STAT) & 3; got != tt.mode {
				t.Fatalf("got mode %d, want %d", got, tt.mode)
			}
			if p.AcceptsDMARow() {
				t.Errorf("row accepted from an hblank that already ended")
			}
		})
	}

	p := New(true)
	p.Write(types.LCDC, 0x91)
	p.Advance(oamDots + transferDots)
	p.Write(types.LCDC, 0x11)
	if p.AcceptsDMARow() {
		t.Errorf("row accepted after the lcd was switched off")
	}
}

func TestPPU_Frame(t *testing.T) {
	p := New(false)
	p.Write(types.LCDC, 0x91)

	p.Advance(lineDots * ScreenHeight)
	if got := p.Read(types.LY); got != ScreenHeight {
		t.Errorf("got LY %d, want %d", got, ScreenHeight)
	}
	if !p.EnteredBlanking() || p.EnteredBlanking() {
		t.Errorf("blanking edge not reported exactly once")
	}
	if !p.FrameReady() || p.FrameReady() {
		t.Errorf("frame not reported exactly once")
	}
	if got := p.TakeInterrupt(); got&interrupts.VBlankFlag == 0 {
		t.Errorf("got %02X, want VBlank requested", got)
	}
	if got := p.TakeInterrupt(); got != 0 {
		t.Errorf("got %02X, want 00", got)
	}

	p.Advance(frameDots - lineDots*ScreenHeight)
	if got := p.Read(types.LY); got != 0 {
		t.Errorf("got LY %d, want %d", got, 0)
	}

	// one blanking edge per frame at a fixed cadence
	edges := 0
	for i := 0; i < frameDots*3; i += 4 {
		p.Advance(4)
		if p.EnteredBlanking() {
			edges++
		}
	}
	if edges != 3 {
		t.Errorf("got %d blanking edges, want 3", edges)
	}
}

func TestPPU_LCDOff(t *testing.T) {
	p := New(false)
	p.Advance(frameDots)
	if p.FrameReady() {
		t.Errorf("frame completed with the LCD off")
	}
	if got := p.Read(types.STAT) & 3; got != 0 {
		t.Errorf("got mode %d, want 0", got)
	}

	p.Write(types.LCDC, 0x91)
	p.Advance(lineDots * 10)
	p.Write(types.LCDC, 0x11)
	if got := p.Read(types.LY); got != 0 {
		t.Errorf("got LY %d, want 0", got)
	}
}

func TestPPU_Coincidence(t *testing.T) {
	p := New(false)
	p.Write(types.STAT, types.Bit6)
	p.Write(types.LYC, 2)
	p.Write(types.LCDC, 0x91)
	p.TakeInterrupt()

	p.Advance(lineDots * 2)
	if got := p.Read(types.STAT) & types.Bit2; got == 0 {
		t.Errorf("coincidence flag not set")
	}
	if got := p.TakeInterrupt(); got&interrupts.LCDFlag == 0 {
		t.Errorf("got %02X, want LCD requested", got)
	}
}

func TestPPU_ColorRegisters(t *testing.T) {
	t.Run("classic", func(t *testing.T) {
		p := New(false)
		p.Write(types.VBK, 1)
		p.Write(0x8000, 0x12)
		if got := p.Read(types.VBK); got != 0xFF {
			t.Errorf("got %02X, want FF", got)
		}
		if got := p.Read(types.BCPS); got != 0xFF {
			t.Errorf("got %02X, want FF", got)
		}
		if got := p.Read(0x8000); got != 0x12 {
			t.Errorf("got %02X, want 12", got)
		}
	})
	t.Run("color", func(t *testing.T) {
		p := New(true)
		p.Write(0x8000, 0x12)
		p.Write(types.VBK, 1)
		if got := p.Read(types.VBK); got != 0xFF {
			t.Errorf("got %02X, want FF", got)
		}
		if got := p.Read(0x8000); got != 0x00 {
			t.Errorf("bank 1: got %02X, want 00", got)
		}
		p.Write(types.VBK, 0)
		if got := p.Read(types.VBK); got != 0xFE {
			t.Errorf("got %02X, want FE", got)
		}

		p.Write(types.BCPS, 0x80)
		p.Write(types.BCPD, 0x1F)
		p.Write(types.BCPD, 0x00)
		if got := p.Read(types.BCPS); got != 0xC2 {
			t.Errorf("got %02X, want C2", got)
		}
		if got := p.bgPalette.Colour(0, 0); got != [3]uint8{0xFF, 0, 0} {
			t.Errorf("got %v, want red", got)
		}
	})
}

func TestPPU_Render(t *testing.T) {
	p := New(false)
	// tile 0 is solid colour 3
	for i := uint16(0); i < 16; i++ {
		p.Write(0x8000+i, 0xFF)
	}
	p.Write(types.BGP, 0xE4)
	p.Write(types.LCDC, 0x91)
	p.Advance(lineDots * ScreenHeight)

	frame := p.FrameData()
	if len(frame) != FrameSize {
		t.Fatalf("got %d bytes, want %d", len(frame), FrameSize)
	}
	for i, b := range frame {
		if b != 0 {
			t.Fatalf("byte %d: got %02X, want 00", i, b)
		}
	}

	// the copy is not a live view
	frame[0] = 0xAA
	if p.FrameData()[0] != 0 {
		t.Errorf("frame data aliases the frame buffer")
	}
}
