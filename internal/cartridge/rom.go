package cartridge

import "github.com/thelolagemann/gbmirror/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, optionally with up to 8kB of RAM.
type ROMCartridge struct {
	rom []byte
	*base
}

// newROMCartridge returns a new ROMCartridge.
func newROMCartridge(rom []byte, b *base) *ROMCartridge {
	b.ram = make([]byte, b.header.RAMSize)
	if len(b.ram) > 0x2000 {
		b.ram = b.ram[:0x2000]
	}
	return &ROMCartridge{rom: rom, base: b}
}

func (r *ROMCartridge) ReadROM(address uint16) uint8 {
	return r.rom[address&0x7FFF]
}

// WriteROM does nothing as ROM is read-only.
func (r *ROMCartridge) WriteROM(uint16, uint8) {}

func (r *ROMCartridge) ReadRAM(address uint16) uint8 {
	return r.readRAM(int(address & 0x1FFF))
}

func (r *ROMCartridge) WriteRAM(address uint16, value uint8) {
	r.writeRAM(int(address&0x1FFF), value)
}

// Reset does nothing as there is no banking.
func (r *ROMCartridge) Reset() {}

func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
