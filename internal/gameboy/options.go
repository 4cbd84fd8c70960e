package gameboy

import (
	"github.com/thelolagemann/gbmirror/internal/mmu"
	"github.com/thelolagemann/gbmirror/internal/serial"
	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// AsMode selects the hardware to emulate. types.Color runs a
// cartridge without colour support as types.ColorAsClassic.
func AsMode(m types.Mode) Opt {
	return func(gb *GameBoy) {
		gb.mode = m
	}
}

// SkipChecksum skips verifying the header checksum.
func SkipChecksum() Opt {
	return func(gb *GameBoy) {
		gb.skipChecksum = true
	}
}

// WithStatePath sets the file the state is written to on Close.
func WithStatePath(path string) Opt {
	return func(gb *GameBoy) {
		gb.statePath = path
	}
}

// WithBatteryPath sets the file battery backed cartridge RAM
// is loaded from, and written to on Close.
func WithBatteryPath(path string) Opt {
	return func(gb *GameBoy) {
		gb.batteryPath = path
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.log = log
	}
}

// WithSerialCallback attaches cb to the serial port.
func WithSerialCallback(cb serial.Callback) Opt {
	return func(gb *GameBoy) {
		gb.serial = cb
	}
}

// WithAudio attaches the sound registers. Without it they are
// unmapped.
func WithAudio() Opt {
	return func(gb *GameBoy) {
		gb.audio = true
	}
}

// WithProcessor replaces the default processor with the one
// returned by fn, given the bus it should drive.
func WithProcessor(fn func(bus *mmu.MMU) Processor) Opt {
	return func(gb *GameBoy) {
		gb.processor = fn
	}
}

// withVideo replaces the video unit, for tests.
func withVideo(v mmu.Video) Opt {
	return func(gb *GameBoy) {
		gb.video = v
	}
}
