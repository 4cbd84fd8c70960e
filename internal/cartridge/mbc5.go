package cartridge

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// MemoryBankedCartridge5 represents a MBC5 cartridge, with up to
// 8MB of ROM selected by a 9-bit bank number and 128kB of RAM.
type MemoryBankedCartridge5 struct {
	rom        []byte
	ramEnabled bool
	romBank    int
	ramBank    int

	*base
}

// newMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func newMemoryBankedCartridge5(rom []byte, b *base) *MemoryBankedCartridge5 {
	b.ram = make([]byte, b.header.RAMSize)
	return &MemoryBankedCartridge5{
		rom:     rom,
		romBank: 1,
		base:    b,
	}
}

func (m *MemoryBankedCartridge5) Reset() {
	m.romBank, m.ramBank = 1, 0
	m.ramEnabled = false
}

func (m *MemoryBankedCartridge5) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address] // first bank is always fixed
	}
	offset := m.romBank % bankCount(m.rom, 0x4000) * 0x4000
	return m.rom[offset+int(address&0x3FFF)]
}

func (m *MemoryBankedCartridge5) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits), bank 0 is selectable
		m.romBank = m.romBank&0x100 | int(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | int(value&0x1)<<8
	case address < 0x6000:
		m.ramBank = int(value & 0x0F)
	}
}

func (m *MemoryBankedCartridge5) ramOffset(address uint16) int {
	return m.ramBank%bankCount(m.ram, 0x2000)*0x2000 + int(address&0x1FFF)
}

func (m *MemoryBankedCartridge5) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(m.ramOffset(address))
}

func (m *MemoryBankedCartridge5) WriteRAM(address uint16, value uint8) {
	if m.ramEnabled {
		m.writeRAM(m.ramOffset(address), value)
	}
}

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.romBank = int(s.Read16())
	m.ramBank = int(s.Read8())
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write16(uint16(m.romBank))
	s.Write8(uint8(m.ramBank))
}
