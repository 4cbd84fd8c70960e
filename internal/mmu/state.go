package mmu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// Reset restores the bus and every peripheral it owns to their
// power on state. The cartridge keeps its RAM.
func (m *MMU) Reset() {
	m.Cart.Reset()
	m.Joypad.Reset()
	m.Serial.Reset()
	m.Timer.Reset()
	m.Interrupts.Reset()
	m.Scheduler.Reset()
	m.HDMA.Reset()
	m.Video.Reset()
	if r, ok := m.Sound.(types.Resettable); ok {
		r.Reset()
	}
	m.zRAM = [0x7F]uint8{}
	m.undocumented = [3]uint8{}
	m.powerOn()
}

var _ types.Stater = (*MMU)(nil)

// Load restores the bus from s, in the order written by Save.
func (m *MMU) Load(s *types.State) {
	m.Cart.Load(s)
	m.Video.Load(s)
	m.wRAM.Load(s)
	s.ReadData(m.zRAM[:])
	s.ReadData(m.undocumented[:])
	m.Joypad.Load(s)
	m.Serial.Load(s)
	m.Timer.Load(s)
	m.Interrupts.Load(s)
	m.Scheduler.Load(s)
	m.HDMA.Load(s)
	if st, ok := m.Sound.(types.Stater); ok {
		st.Load(s)
	}
}

func (m *MMU) Save(s *types.State) {
	m.Cart.Save(s)
	m.Video.Save(s)
	m.wRAM.Save(s)
	s.WriteData(m.zRAM[:])
	s.WriteData(m.undocumented[:])
	m.Joypad.Save(s)
	m.Serial.Save(s)
	m.Timer.Save(s)
	m.Interrupts.Save(s)
	m.Scheduler.Save(s)
	m.HDMA.Save(s)
	if st, ok := m.Sound.(types.Stater); ok {
		st.Save(s)
	}
}
