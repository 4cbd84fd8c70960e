package cartridge

import "github.com/thelolagemann/gbmirror/internal/types"

// MemoryBankedCartridge2 represents a MBC2 cartridge, with up to
// 256kB of ROM and 512 half-bytes of built-in RAM, repeated across
// the whole external RAM window.
type MemoryBankedCartridge2 struct {
	rom []byte

	ramg bool
	romb uint8

	*base
}

// newMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func newMemoryBankedCartridge2(rom []byte, b *base) *MemoryBankedCartridge2 {
	b.ram = make([]byte, 512)
	return &MemoryBankedCartridge2{
		rom:  rom,
		romb: 0x01,
		base: b,
	}
}

func (m *MemoryBankedCartridge2) Reset() {
	m.ramg, m.romb = false, 0x01
}

func (m *MemoryBankedCartridge2) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address]
	}
	offset := int(m.romb) % bankCount(m.rom, 0x4000) * 0x4000
	return m.rom[offset+int(address&0x3FFF)]
}

// WriteROM selects the ROM bank when bit 8 of the address is
// set, and enables RAM otherwise.
func (m *MemoryBankedCartridge2) WriteROM(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x100 == 0x100 {
		m.romb = value & 0x0F
		if m.romb == 0 {
			m.romb = 1
		}
	} else {
		m.ramg = value&0x0F == 0x0A
	}
}

func (m *MemoryBankedCartridge2) ReadRAM(address uint16) uint8 {
	if !m.ramg {
		return 0xFF
	}
	return m.readRAM(int(address&0x1FF)) | 0xF0
}

func (m *MemoryBankedCartridge2) WriteRAM(address uint16, value uint8) {
	if m.ramg {
		m.writeRAM(int(address&0x1FF), value&0x0F)
	}
}

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	m.ramg = s.ReadBool()
	m.romb = s.Read8()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	s.WriteBool(m.ramg)
	s.Write8(m.romb)
	s.WriteData(m.ram)
}
