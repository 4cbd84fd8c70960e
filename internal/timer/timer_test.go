package timer

import (
	"testing"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

func TestController_DIV(t *testing.T) {
	c := NewController()
	c.Advance(256 * 3)
	if got := c.Read(types.DIV); got != 3 {
		t.Errorf("got %02X, want %02X", got, 3)
	}
	c.Write(types.DIV, 0x55)
	if got := c.Read(types.DIV); got != 0 {
		t.Errorf("got %02X, want %02X", got, 0)
	}
}

func TestController_Frequencies(t *testing.T) {
	tests := []struct {
		tac    uint8
		period uint32
	}{
		{0x04, 1024},
		{0x05, 16},
		{0x06, 64},
		{0x07, 256},
	}
	for _, tt := range tests {
		c := NewController()
		c.Write(types.TAC, tt.tac)
		c.Advance(tt.period * 10)
		if got := c.Read(types.TIMA); got != 10 {
			t.Errorf("TAC %02X: got %02X, want %02X", tt.tac, got, 10)
		}
	}
}

func TestController_Disabled(t *testing.T) {
	c := NewController()
	c.Write(types.TAC, 0x01)
	c.Advance(4096)
	if got := c.Read(types.TIMA); got != 0 {
		t.Errorf("got %02X, want %02X", got, 0)
	}
	if got := c.Read(types.TAC); got != 0xF9 {
		t.Errorf("got %02X, want %02X", got, 0xF9)
	}
}

func TestController_Overflow(t *testing.T) {
	c := NewController()
	c.Write(types.TMA, 0xF0)
	c.Write(types.TIMA, 0xFF)
	c.Write(types.TAC, 0x05)
	c.Advance(16)
	if got := c.Read(types.TIMA); got != 0xF0 {
		t.Errorf("got %02X, want %02X", got, 0xF0)
	}
	if c.Interrupt != interrupts.TimerFlag {
		t.Errorf("got %02X, want %02X", c.Interrupt, interrupts.TimerFlag)
	}
}

func TestController_State(t *testing.T) {
	c := NewController()
	c.Write(types.TAC, 0x06)
	c.Write(types.TMA, 0x42)
	c.Advance(1000)

	s := types.NewState()
	c.Save(s)

	d := NewController()
	d.Load(types.StateFromBytes(s.Bytes()))
	for _, addr := range []uint16{types.DIV, types.TIMA, types.TMA, types.TAC} {
		if got, want := d.Read(addr), c.Read(addr); got != want {
			t.Errorf("%04X: got %02X, want %02X", addr, got, want)
		}
	}
}
