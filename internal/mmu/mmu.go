// Package mmu provides the memory management unit for the Game Boy.
// It decodes every address the processor touches into the owning
// region or register, runs the DMA engines, and advances the time
// driven peripherals after each instruction.
package mmu

import (
	"github.com/thelolagemann/gbmirror/internal/cartridge"
	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/joypad"
	"github.com/thelolagemann/gbmirror/internal/scheduler"
	"github.com/thelolagemann/gbmirror/internal/serial"
	"github.com/thelolagemann/gbmirror/internal/timer"
	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

// IOBus is anything with byte addressed reads and writes.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Video is the video unit the bus routes VRAM, OAM and the LCD
// registers to.
type Video interface {
	IOBus
	Advance(ticks uint32)
	// EnteredBlanking reports and clears the vertical blanking edge.
	EnteredBlanking() bool
	// FrameReady reports and clears the frame complete flag.
	FrameReady() bool
	FrameData() []byte
	// AcceptsDMARow reports, once per horizontal blanking
	// period, that a VRAM DMA row may be copied.
	AcceptsDMARow() bool
	// TakeInterrupt returns and clears pending interrupt requests.
	TakeInterrupt() uint8

	types.Resettable
	types.Stater
}

// Audio is the optional sound unit owning 0xFF10 - 0xFF3F.
type Audio interface {
	IOBus
	Advance(ticks uint32)
}

// MMU is the memory management unit for the Game Boy, and the
// exclusive owner of every peripheral it routes to.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Controller

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video Video

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFFFF - I/O Registers
	io [0x100]register

	// 0xFF10 - 0xFF3F - Sound, nil when absent
	Sound Audio

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM [0x7F]uint8

	Joypad     *joypad.State
	Serial     *serial.Controller
	Timer      *timer.Controller
	Interrupts *interrupts.Service
	Scheduler  *scheduler.Scheduler
	HDMA       *HDMA

	// 0xFF72, 0xFF73 and 0xFF75
	undocumented [3]uint8

	mode types.Mode
	Log  log.Logger
}

// NewMMU returns a new MMU in the given mode, powered on. sound
// may be nil.
func NewMMU(cart cartridge.Controller, mode types.Mode, video Video, sound Audio, cb serial.Callback, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	m := &MMU{
		Cart:       cart,
		Video:      video,
		Sound:      sound,
		wRAM:       NewWRAM(),
		Joypad:     joypad.New(),
		Serial:     serial.NewController(cb),
		Timer:      timer.NewController(),
		Interrupts: interrupts.NewService(),
		Scheduler:  scheduler.NewScheduler(),
		mode:       mode,
		Log:        logger,
	}
	m.HDMA = NewHDMA(m, video, logger)
	m.init()
	m.powerOn()

	return m
}

// Mode returns the mode the bus was created in.
func (m *MMU) Mode() types.Mode {
	return m.mode
}

// WRAMBank returns the bank mapped at 0xD000, always in [1, 7].
func (m *MMU) WRAMBank() uint8 {
	return m.wRAM.bank
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc. Unmapped addresses read 0xFF.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.Cart.ReadROM(address)
	case address < 0xA000:
		return m.Video.Read(address)
	case address < 0xC000:
		return m.Cart.ReadRAM(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.Video.Read(address)
	case address < 0xFF00:
		return 0xFF
	}
	return m.io[address&0xFF].read()
}

// Write writes value to the given address. Writes to unmapped
// or read only addresses are dropped.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.WriteROM(address, value)
	case address < 0xA000:
		m.Video.Write(address, value)
	case address < 0xC000:
		m.Cart.WriteRAM(address, value)
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.Video.Write(address, value)
	case address < 0xFF00:
	default:
		m.io[address&0xFF].write(value)
	}
}

// Read16 reads a little-endian word at address.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian word at address.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// Peek returns the value at address without side effects, for
// observers outside the processor. Work and high RAM are read
// directly, anything else returns 0xFF.
func (m *MMU) Peek(address uint16) uint8 {
	switch {
	case address >= 0xC000 && address < 0xFE00:
		return m.wRAM.Read(address)
	case address >= 0xFF80 && address < 0xFFFF:
		return m.zRAM[address&0x7F]
	}
	return 0xFF
}

// oamDMA copies 160 bytes from (value << 8) into OAM, through
// the bus.
func (m *MMU) oamDMA(value uint8) {
	base := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xFE00+i, m.Read(base+i))
	}
}

// powerOn fills work RAM with its power on pattern and writes
// the initial I/O register values through the bus.
func (m *MMU) powerOn() {
	m.wRAM.Fill(42)
	for _, r := range types.InitialIO {
		m.Write(r.Address, r.Value)
	}
}
