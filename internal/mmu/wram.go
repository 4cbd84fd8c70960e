package mmu

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// WRAM is the 32kB of work RAM, seen through a fixed window at
// 0xC000 (bank 0) and a switchable window at 0xD000 (banks 1-7),
// both echoed 0x2000 higher.
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8
}

func NewWRAM() *WRAM {
	return &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
	}
}

// ReadBank returns types.SVBK.
func (w *WRAM) ReadBank() uint8 {
	return w.bank
}

// WriteBank selects the switchable bank, where 0 selects bank 1.
func (w *WRAM) WriteBank(v uint8) {
	v &= 0x07 // only 3 bits are used
	if v == 0 {
		v = 1
	}
	w.bank = v
}

func (w *WRAM) window(addr uint16) *[0x1000]uint8 {
	// 0xC000 - 0xCFFF and its echo 0xE000 - 0xEFFF are fixed
	if addr&0x1000 == 0 {
		return &w.raw[0]
	}
	return &w.raw[w.bank]
}

func (w *WRAM) Read(addr uint16) uint8 {
	return w.window(addr)[addr&0xFFF]
}

func (w *WRAM) Write(addr uint16, v uint8) {
	w.window(addr)[addr&0xFFF] = v
}

// Fill resets the bank select and fills every bank with a
// deterministic pattern from a linear congruential generator.
func (w *WRAM) Fill(seed uint32) {
	const (
		a = 1103515245
		c = 12345
	)
	w.bank = 1
	x := seed
	for bank := range w.raw {
		for i := range w.raw[bank] {
			x = x*a + c
			w.raw[bank][i] = uint8(x >> 23)
		}
	}
}

var _ types.Stater = (*WRAM)(nil)

func (w *WRAM) Load(s *types.State) {
	w.WriteBank(s.Read8())
	for bank := range w.raw {
		s.ReadData(w.raw[bank][:])
	}
}

func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for bank := range w.raw {
		s.WriteData(w.raw[bank][:])
	}
}
