package mmu

import (
	"fmt"

	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

// DMAMode is the state of the VRAM DMA engine.
type DMAMode uint8

const (
	// NoDMA means no transfer is active.
	NoDMA DMAMode = iota
	// GDMA is a general purpose transfer, performed all at once.
	GDMA
	// HBlankDMA copies one row per horizontal blanking period.
	HBlankDMA
)

func (d DMAMode) String() string {
	switch d {
	case GDMA:
		return "GDMA"
	case HBlankDMA:
		return "HDMA"
	}
	return "none"
}

// IllegalDMAError is raised, via panic, when a transfer is started
// from a source the hardware cannot read from.
type IllegalDMAError struct {
	Source uint16
}

func (e *IllegalDMAError) Error() string {
	return fmt.Sprintf("mmu: VRAM DMA transfer with illegal source address 0x%04X", e.Source)
}

// HDMA is the VRAM DMA engine, controlled through types.HDMA1 -
// types.HDMA5.
type HDMA struct {
	regs   [4]uint8
	mode   DMAMode
	source uint16
	dest   uint16
	length uint8

	bus   IOBus
	video IOBus
	log   log.Logger
}

// NewHDMA returns a new idle HDMA engine that reads through bus
// and writes straight into video.
func NewHDMA(bus IOBus, video IOBus, logger log.Logger) *HDMA {
	h := &HDMA{
		bus:   bus,
		video: video,
		log:   logger,
	}
	h.Reset()
	return h
}

func (h *HDMA) Reset() {
	h.regs = [4]uint8{}
	h.mode = NoDMA
	h.source, h.dest = 0, 0
	h.length = 0xFF
}

// Mode returns the active transfer mode.
func (h *HDMA) Mode() DMAMode {
	return h.mode
}

func (h *HDMA) Read(address uint16) uint8 {
	switch address {
	case types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4:
		return h.regs[address-types.HDMA1]
	case types.HDMA5:
		if h.mode == NoDMA {
			return h.length | types.Bit7
		}
		return h.length
	}
	return 0xFF
}

func (h *HDMA) Write(address uint16, value uint8) {
	switch address {
	case types.HDMA1:
		h.regs[0] = value
	case types.HDMA2:
		h.regs[1] = value & 0xF0
	case types.HDMA3:
		h.regs[2] = value & 0x1F
	case types.HDMA4:
		h.regs[3] = value & 0xF0
	case types.HDMA5:
		h.start(value)
	}
}

func (h *HDMA) start(value uint8) {
	// writing with bit 7 clear stops an active HDMA transfer
	if h.mode == HBlankDMA {
		if value&types.Bit7 == 0 {
			h.mode = NoDMA
		}
		return
	}

	source := uint16(h.regs[0])<<8 | uint16(h.regs[1])
	dest := uint16(h.regs[2])<<8 | uint16(h.regs[3]) | 0x8000
	if !(source <= 0x7FF0 || (source >= 0xA000 && source <= 0xDFF0)) {
		err := &IllegalDMAError{Source: source}
		h.log.Errorf("%v", err)
		panic(err)
	}

	h.source = source
	h.dest = dest
	h.length = value & 0x7F
	if value&types.Bit7 != 0 {
		h.mode = HBlankDMA
	} else {
		h.mode = GDMA
	}
}

// Perform runs any pending transfer and returns the number of
// ticks it stalled the bus for.
func (h *HDMA) Perform(accepts func() bool) uint32 {
	switch h.mode {
	case GDMA:
		rows := uint32(h.length) + 1
		for i := uint32(0); i < rows; i++ {
			h.row()
		}
		h.mode = NoDMA
		return rows * 8
	case HBlankDMA:
		if !accepts() {
			return 0
		}
		h.row()
		if h.length == 0x7F {
			h.mode = NoDMA
		}
		return 8
	}
	return 0
}

// row copies 16 bytes and steps the length counter, where 0
// wraps around to 0x7F.
func (h *HDMA) row() {
	for j := uint16(0); j < 0x10; j++ {
		h.video.Write(h.dest+j, h.bus.Read(h.source+j))
	}
	h.source += 0x10
	h.dest += 0x10
	if h.length == 0 {
		h.length = 0x7F
	} else {
		h.length--
	}
}

var _ types.Stater = (*HDMA)(nil)

func (h *HDMA) Load(s *types.State) {
	s.ReadData(h.regs[:])
	h.mode = DMAMode(s.Read8())
	h.source = s.Read16()
	h.dest = s.Read16()
	h.length = s.Read8()
}

func (h *HDMA) Save(s *types.State) {
	s.WriteData(h.regs[:])
	s.Write8(uint8(h.mode))
	s.Write16(h.source)
	s.Write16(h.dest)
	s.Write8(h.length)
}
