// Package gameboy provides an emulation of a Nintendo Game Boy
// driven one video frame at a time, deriving the mirror snapshot
// read by external controllers.
package gameboy

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/gbmirror/internal/apu"
	"github.com/thelolagemann/gbmirror/internal/cartridge"
	"github.com/thelolagemann/gbmirror/internal/cpu"
	"github.com/thelolagemann/gbmirror/internal/joypad"
	"github.com/thelolagemann/gbmirror/internal/mirror"
	"github.com/thelolagemann/gbmirror/internal/mmu"
	"github.com/thelolagemann/gbmirror/internal/ppu"
	"github.com/thelolagemann/gbmirror/internal/serial"
	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 4194304 / 60
)

// Processor executes instructions against the bus, returning the
// number of ticks each step took.
type Processor interface {
	Step() uint32

	types.Resettable
	types.Stater
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator, and the exclusive
// owner of every component.
type GameBoy struct {
	CPU Processor
	MMU *mmu.MMU
	APU *apu.APU

	mirror  mirror.Mirror
	romHash uint64

	// construction options
	mode         types.Mode
	skipChecksum bool
	audio        bool
	statePath    string
	batteryPath  string
	serial       serial.Callback
	processor    func(bus *mmu.MMU) Processor
	video        mmu.Video

	log log.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewGameBoy returns a new GameBoy running rom. A malformed
// cartridge fails construction with a *cartridge.HeaderError.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		mode: types.Classic,
		log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom, g.skipChecksum)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	mode, err := cart.Header().Mode(g.mode)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g.mode = mode

	if g.video == nil {
		g.video = ppu.New(mode == types.Color)
	}
	var sound mmu.Audio
	if g.audio {
		g.APU = apu.NewAPU()
		sound = g.APU
	}
	g.MMU = mmu.NewMMU(cart, mode, g.video, sound, g.serial, g.log)
	if c, ok := cart.(cartridge.Clocked); ok {
		c.AttachClock(g.MMU.Scheduler)
	}

	if g.processor != nil {
		g.CPU = g.processor(g.MMU)
	} else {
		g.CPU = cpu.NewHalted(g.MMU.Interrupts, mode)
	}
	g.romHash = xxhash.Sum64(rom)

	if err := g.loadBattery(); err != nil {
		return nil, err
	}

	log.WithFields(g.log, log.Fields{
		"mode": mode,
		"type": cart.Header().CartridgeType,
	}).Debugf("loaded %s", cart.Name())

	return g, nil
}

// RunToNextFrame steps the processor and the bus until the video
// unit completes a frame, which it returns. The mirror is derived
// every time the video unit enters vertical blanking. With the LCD
// switched off no frame is ever completed and it never returns.
func (g *GameBoy) RunToNextFrame() []byte {
	for {
		g.MMU.Advance(g.CPU.Step())

		if g.video.EnteredBlanking() {
			g.mirror.Derive(g.MMU)
		}
		if g.video.FrameReady() {
			return g.video.FrameData()
		}
	}
}

// Reset returns the Game Boy to its power on state. Failures are
// logged and swallowed, so the session is always usable afterwards.
func (g *GameBoy) Reset() {
	defer func() {
		if r := recover(); r != nil {
			g.log.Warnf("reset: recovered from %v", r)
		}
	}()

	g.MMU.Reset()
	g.CPU.Reset()
	g.mirror.Reset()
}

// Close performs teardown once: the state is written to the state
// path and battery backed RAM to the battery path, when set. Every
// write is attempted, and their failures are returned together.
func (g *GameBoy) Close() error {
	g.closeOnce.Do(func() {
		var errs *multierror.Error
		if g.statePath != "" {
			if err := g.SaveState(g.statePath); err != nil {
				g.log.Errorf("saving state: %v", err)
				errs = multierror.Append(errs, err)
			} else {
				g.log.Infof("saved state to %s", g.statePath)
			}
		}
		if err := g.saveBattery(); err != nil {
			g.log.Errorf("saving battery: %v", err)
			errs = multierror.Append(errs, err)
		}
		g.closeErr = errs.ErrorOrNil()
	})
	return g.closeErr
}

// Mode returns the mode the session runs in.
func (g *GameBoy) Mode() types.Mode {
	return g.mode
}

// Mirror returns a copy of the full mirror snapshot.
func (g *GameBoy) Mirror() []byte {
	return g.mirror.Bytes()
}

// Frames returns the number of times the mirror was derived.
func (g *GameBoy) Frames() uint32 {
	return g.mirror.Frame()
}

// SetJoypadMask replaces the state of every key, a set bit
// meaning held.
func (g *GameBoy) SetJoypadMask(mask uint8) {
	g.MMU.Joypad.SetMask(mask)
}

// Press holds button until it is released.
func (g *GameBoy) Press(button joypad.Button) {
	g.MMU.Joypad.Press(button)
}

// Release releases button.
func (g *GameBoy) Release(button joypad.Button) {
	g.MMU.Joypad.Release(button)
}

// SetSerialCallback attaches cb to the serial port, nil detaching
// any callback.
func (g *GameBoy) SetSerialCallback(cb serial.Callback) {
	g.MMU.Serial.Callback = cb
}

func (g *GameBoy) ReadByte(address uint16) uint8 {
	return g.MMU.Read(address)
}

func (g *GameBoy) WriteByte(address uint16, value uint8) {
	g.MMU.Write(address, value)
}

func (g *GameBoy) ReadWord(address uint16) uint16 {
	return g.MMU.Read16(address)
}

func (g *GameBoy) WriteWord(address uint16, value uint16) {
	g.MMU.Write16(address, value)
}

// Name returns the title of the cartridge.
func (g *GameBoy) Name() string {
	return g.MMU.Cart.Name()
}

// RAMUpdated reports, once, whether cartridge RAM was written.
func (g *GameBoy) RAMUpdated() bool {
	return g.MMU.Cart.RAMUpdated()
}

func (g *GameBoy) loadBattery() error {
	if g.batteryPath == "" || !g.MMU.Cart.IsBatteryBacked() {
		return nil
	}
	data, err := os.ReadFile(g.batteryPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("gameboy: reading battery: %w", err)
	}
	if err := g.MMU.Cart.LoadRAM(data); err != nil {
		return fmt.Errorf("gameboy: loading battery: %w", err)
	}
	g.log.Infof("loaded battery from %s", g.batteryPath)
	return nil
}

func (g *GameBoy) saveBattery() error {
	if g.batteryPath == "" || !g.MMU.Cart.IsBatteryBacked() {
		return nil
	}
	return os.WriteFile(g.batteryPath, g.MMU.Cart.DumpRAM(), 0o644)
}
