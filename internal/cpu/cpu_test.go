package cpu

import (
	"testing"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

func TestHalted_Reset(t *testing.T) {
	tests := []struct {
		mode types.Mode
		a, f uint8
	}{
		{types.Classic, 0x01, 0xB0},
		{types.Color, 0x11, 0x80},
		{types.ColorAsClassic, 0x11, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			c := NewHalted(interrupts.NewService(), tt.mode)
			if c.A != tt.a {
				t.Errorf("A: got %02X, want %02X", c.A, tt.a)
			}
			if c.F != tt.f {
				t.Errorf("F: got %02X, want %02X", c.F, tt.f)
			}
			if c.PC != 0x0100 || c.SP != 0xFFFE {
				t.Errorf("got PC %04X SP %04X, want PC 0100 SP FFFE", c.PC, c.SP)
			}
		})
	}
}

func TestHalted_Step(t *testing.T) {
	irq := interrupts.NewService()
	c := NewHalted(irq, types.Classic)

	if got := c.Step(); got != haltTicks {
		t.Errorf("got %d ticks, want %d", got, haltTicks)
	}

	irq.Enable = interrupts.VBlankFlag | interrupts.TimerFlag
	irq.Request(interrupts.TimerFlag)
	irq.Request(interrupts.VBlankFlag)
	if got := c.Step(); got != interruptTicks {
		t.Errorf("got %d ticks, want %d", got, interruptTicks)
	}
	if c.Serviced != 0x40 {
		t.Errorf("got vector %04X, want %04X", c.Serviced, 0x40)
	}
	c.Step()
	if c.Serviced != 0x50 {
		t.Errorf("got vector %04X, want %04X", c.Serviced, 0x50)
	}
	if irq.Flag != 0 {
		t.Errorf("got IF %02X, want 00", irq.Flag)
	}
	if c.Count != 2 {
		t.Errorf("got %d interrupts, want 2", c.Count)
	}
}

func TestHalted_IMEClear(t *testing.T) {
	irq := interrupts.NewService()
	c := NewHalted(irq, types.Classic)
	c.IME = false
	irq.Enable = interrupts.JoypadFlag
	irq.Request(interrupts.JoypadFlag)

	if got := c.Step(); got != haltTicks {
		t.Errorf("got %d ticks, want %d", got, haltTicks)
	}
	if irq.Flag != interrupts.JoypadFlag {
		t.Errorf("got IF %02X, want %02X", irq.Flag, interrupts.JoypadFlag)
	}
}

func TestHalted_State(t *testing.T) {
	c := NewHalted(interrupts.NewService(), types.Color)
	c.B = 0x42
	c.Count = 7
	s := types.NewState()
	c.Save(s)

	loaded := NewHalted(interrupts.NewService(), types.Color)
	loaded.Load(types.StateFromBytes(s.Bytes()))
	if loaded.B != 0x42 || loaded.Count != 7 {
		t.Errorf("got B %02X count %d, want B 42 count 7", loaded.B, loaded.Count)
	}
}
