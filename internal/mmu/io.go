package mmu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// register is a memory mapped I/O register.
type register struct {
	read  func() uint8
	write func(uint8)
}

func openBus() uint8 { return 0xFF }

func ignore(uint8) {}

var unmapped = register{read: openBus, write: ignore}

func (m *MMU) reserve(address types.HardwareAddress, read func() uint8, write func(uint8)) {
	m.io[address&0xFF] = register{read: read, write: write}
}

// reserveRange routes first through last to a byte addressed
// component.
func (m *MMU) reserveRange(first, last types.HardwareAddress, c func() IOBus) {
	for a := first; a <= last; a++ {
		address := a
		m.reserve(address, func() uint8 {
			return c().Read(address)
		}, func(v uint8) {
			c().Write(address, v)
		})
	}
}

// init builds the I/O register table for the session's mode.
func (m *MMU) init() {
	for i := range m.io {
		m.io[i] = unmapped
	}

	m.reserve(types.P1, m.Joypad.Read, m.Joypad.Write)
	m.reserveRange(types.SB, types.SC, func() IOBus { return m.Serial })
	m.reserveRange(types.DIV, types.TAC, func() IOBus { return m.Timer })
	m.reserve(types.IF, m.Interrupts.ReadFlag, m.Interrupts.WriteFlag)

	for a := types.NR10; a <= 0xFF3F; a++ {
		address := a
		m.reserve(address, func() uint8 {
			if m.Sound == nil {
				return 0xFF
			}
			return m.Sound.Read(address)
		}, func(v uint8) {
			if m.Sound != nil {
				m.Sound.Write(address, v)
			}
		})
	}

	video := func() IOBus { return m.Video }
	m.reserveRange(types.LCDC, types.LYC, video)
	m.reserve(types.DMA, openBus, m.oamDMA)
	m.reserveRange(types.BGP, types.WX, video)
	m.reserve(types.KEY1, m.Scheduler.ReadKEY1, m.Scheduler.WriteKEY1)
	m.reserveRange(types.VBK, types.VBK, video)
	m.reserveRange(types.HDMA1, types.HDMA5, func() IOBus { return m.HDMA })
	m.reserveRange(types.BCPS, types.OCPD, video)
	m.reserve(types.SVBK, m.wRAM.ReadBank, m.wRAM.WriteBank)

	m.reserve(types.FF72, func() uint8 { return m.undocumented[0] }, func(v uint8) { m.undocumented[0] = v })
	m.reserve(types.FF73, func() uint8 { return m.undocumented[1] }, func(v uint8) { m.undocumented[1] = v })
	m.reserve(types.FF75, func() uint8 { return m.undocumented[2] | 0x8F }, func(v uint8) { m.undocumented[2] = v })
	m.reserve(types.PCM12, func() uint8 { return 0x00 }, ignore)
	m.reserve(types.PCM34, func() uint8 { return 0x00 }, ignore)

	for a := uint16(0xFF80); a < 0xFFFF; a++ {
		i := a & 0x7F
		m.reserve(a, func() uint8 {
			return m.zRAM[i]
		}, func(v uint8) {
			m.zRAM[i] = v
		})
	}
	m.reserve(types.IE, func() uint8 {
		return m.Interrupts.Enable
	}, func(v uint8) {
		m.Interrupts.Enable = v
	})

	m.gate()
}

// gate hides the registers the session's hardware doesn't have.
func (m *MMU) gate() {
	if m.mode != types.Color {
		for _, a := range []types.HardwareAddress{types.KEY1, types.VBK, types.OPRI, types.SVBK} {
			m.io[a&0xFF] = unmapped
		}
		for a := types.HDMA1; a <= types.HDMA5; a++ {
			m.io[a&0xFF] = unmapped
		}
		// the PCM registers still read as 0x00 in color-as-classic mode
		m.io[types.PCM12&0xFF].write = ignore
		m.io[types.PCM34&0xFF].write = ignore
	}
	if m.mode == types.Classic {
		for _, a := range []types.HardwareAddress{types.FF72, types.FF73, types.FF75, types.PCM12, types.PCM34} {
			m.io[a&0xFF] = unmapped
		}
	}
}
