package joypad

import (
	"testing"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
)

var buttons = []Button{
	ButtonRight, ButtonLeft, ButtonUp, ButtonDown,
	ButtonA, ButtonB, ButtonSelect, ButtonStart,
}

func TestState_Rows(t *testing.T) {
	for i, b := range buttons {
		s := New()
		s.Press(b)

		bit := uint8(1) << (i % 4)
		isButton := b >= ButtonA

		// both rows selected
		s.Write(0x00)
		if got, want := s.Read(), 0xCF&^bit; got != want {
			t.Errorf("button %d: got %02X, want %02X", b, got, want)
		}

		// buttons only
		s.Write(0x10)
		want := uint8(0xDF)
		if isButton {
			want &^= bit
		}
		if got := s.Read(); got != want {
			t.Errorf("button %d: got %02X, want %02X", b, got, want)
		}

		// directions only
		s.Write(0x20)
		want = 0xEF
		if !isButton {
			want &^= bit
		}
		if got := s.Read(); got != want {
			t.Errorf("button %d: got %02X, want %02X", b, got, want)
		}

		// nothing selected
		s.Write(0x30)
		if got := s.Read(); got != 0xFF {
			t.Errorf("button %d: got %02X, want FF", b, got)
		}

		s.Write(0x00)
		s.Release(b)
		if got := s.Read(); got != 0xCF {
			t.Errorf("button %d released: got %02X, want CF", b, got)
		}
	}
}

func TestState_InterruptEdge(t *testing.T) {
	s := New()
	s.Write(0x00)
	if s.Interrupt != 0 {
		t.Fatalf("got %02X, want 00", s.Interrupt)
	}

	s.Press(ButtonA)
	if s.Interrupt != interrupts.JoypadFlag {
		t.Errorf("got %02X, want %02X", s.Interrupt, interrupts.JoypadFlag)
	}
	s.Interrupt = 0

	// a second key while one is held doesn't re-raise
	s.Press(ButtonUp)
	if s.Interrupt != 0 {
		t.Errorf("got %02X, want 00", s.Interrupt)
	}

	s.Release(ButtonA)
	s.Release(ButtonUp)
	s.Press(ButtonStart)
	if s.Interrupt != interrupts.JoypadFlag {
		t.Errorf("got %02X, want %02X", s.Interrupt, interrupts.JoypadFlag)
	}
}

func TestState_InterruptNeedsSelection(t *testing.T) {
	s := New()
	s.Write(0x20) // directions only
	s.Press(ButtonA)
	if s.Interrupt != 0 {
		t.Errorf("got %02X, want 00", s.Interrupt)
	}
	// selecting the row exposes the held key
	s.Write(0x10)
	if s.Interrupt != interrupts.JoypadFlag {
		t.Errorf("got %02X, want %02X", s.Interrupt, interrupts.JoypadFlag)
	}
}

func TestState_SetMask(t *testing.T) {
	tests := []struct {
		name      string
		mask      uint8
		read      uint8
		interrupt bool
	}{
		{"none", 0x00, 0xCF, false},
		{"right", 0x01, 0xCE, true},
		{"a", 0x10, 0xCE, true},
		{"right and a", 0x11, 0xCE, true},
		{"down and start", 0x88, 0xC7, true},
		{"all", 0xFF, 0xC0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Write(0x00)
			s.SetMask(tt.mask)
			if got := s.Read(); got != tt.read {
				t.Errorf("got %02X, want %02X", got, tt.read)
			}
			if got := s.Interrupt != 0; got != tt.interrupt {
				t.Errorf("got interrupt %v, want %v", got, tt.interrupt)
			}
		})
	}

	t.Run("held mask", func(t *testing.T) {
		s := New()
		s.Write(0x00)
		s.SetMask(0x01)
		s.Interrupt = 0
		s.SetMask(0x03)
		if s.Interrupt != 0 {
			t.Errorf("got %02X, want 00", s.Interrupt)
		}
	})
}
