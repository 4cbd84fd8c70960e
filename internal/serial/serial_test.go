package serial

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

func TestController_Transfer(t *testing.T) {
	tests := []struct {
		name string
		cb   Callback
		want uint8
	}{
		{"unplugged", nil, 0xFF},
		{"loopback", Loopback(), 0x42},
		{"printer", Printer(&bytes.Buffer{}), 0xFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.cb)
			c.Write(types.SB, 0x42)
			c.Write(types.SC, 0x81)

			if got := c.Read(types.SB); got != tt.want {
				t.Errorf("got %02X, want %02X", got, tt.want)
			}
			if got := c.Read(types.SC); got != 0x7F {
				t.Errorf("got %02X, want %02X", got, 0x7F)
			}
			if c.Interrupt != interrupts.SerialFlag {
				t.Errorf("got %02X, want %02X", c.Interrupt, interrupts.SerialFlag)
			}
		})
	}
}

func TestController_ExternalClock(t *testing.T) {
	c := NewController(Loopback())
	c.Write(types.SB, 0x42)
	c.Write(types.SC, 0x80)
	if c.Interrupt != 0 {
		t.Errorf("got %02X, want 00", c.Interrupt)
	}
	if got := c.Read(types.SC); got != 0xFE {
		t.Errorf("got %02X, want %02X", got, 0xFE)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(Printer(&buf))
	for _, b := range []byte("Passed") {
		c.Write(types.SB, b)
		c.Write(types.SC, 0x81)
	}
	if got := buf.String(); got != "Passed" {
		t.Errorf("got %q, want %q", got, "Passed")
	}
}
