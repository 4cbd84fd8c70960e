package cartridge

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// MemoryBankedCartridge1 represents a MBC1 cartridge, with up to
// 2MB of ROM and 32kB of RAM. Bank registers 1 and 2 combine into
// the ROM bank; in RAM banking mode register 2 also selects the
// RAM bank and the bank mapped at 0x0000.
type MemoryBankedCartridge1 struct {
	rom []byte

	bank1      uint8 // 5 bits
	bank2      uint8 // 2 bits
	ramBanking bool
	ramEnabled bool

	*base
}

// newMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func newMemoryBankedCartridge1(rom []byte, b *base) *MemoryBankedCartridge1 {
	b.ram = make([]byte, b.header.RAMSize)
	return &MemoryBankedCartridge1{
		rom:   rom,
		bank1: 1,
		base:  b,
	}
}

func (m *MemoryBankedCartridge1) Reset() {
	m.bank1, m.bank2 = 1, 0
	m.ramBanking, m.ramEnabled = false, false
}

func (m *MemoryBankedCartridge1) romOffset(bank int) int {
	return bank % bankCount(m.rom, 0x4000) * 0x4000
}

func (m *MemoryBankedCartridge1) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		bank := 0
		if m.ramBanking {
			bank = int(m.bank2) << 5
		}
		return m.rom[m.romOffset(bank)+int(address)]
	}
	bank := int(m.bank2)<<5 | int(m.bank1)
	return m.rom[m.romOffset(bank)+int(address&0x3FFF)]
}

// WriteROM attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// ROM bank number (lower 5 bits), 0 selects 1
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	default:
		m.ramBanking = value&types.Bit0 != 0
	}
}

func (m *MemoryBankedCartridge1) ramOffset(address uint16) int {
	bank := 0
	if m.ramBanking {
		bank = int(m.bank2) % bankCount(m.ram, 0x2000)
	}
	return bank*0x2000 + int(address&0x1FFF)
}

func (m *MemoryBankedCartridge1) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(m.ramOffset(address))
}

func (m *MemoryBankedCartridge1) WriteRAM(address uint16, value uint8) {
	if m.ramEnabled {
		m.writeRAM(m.ramOffset(address), value)
	}
}

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.ramBanking = s.ReadBool()
	m.ramEnabled = s.ReadBool()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.ramBanking)
	s.WriteBool(m.ramEnabled)
	s.WriteData(m.ram)
}
