package env

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/gbmirror/internal/cartridge/cartridgetest"
	"github.com/thelolagemann/gbmirror/internal/mirror"
	"github.com/thelolagemann/gbmirror/internal/ppu"
	"github.com/thelolagemann/gbmirror/internal/types"
)

var rom = cartridgetest.Build(cartridgetest.Options{Title: "ENV"})

func TestEnv_Step(t *testing.T) {
	e, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if e.Frame() != nil {
		t.Errorf("got a frame before the first step")
	}
	for i := uint32(1); i <= 3; i++ {
		m, reward, done := e.Step(0x00)
		if len(m) != VisibleSize {
			t.Fatalf("got %d bytes, want %d", len(m), VisibleSize)
		}
		if reward != 0 || done {
			t.Errorf("got reward %v done %v, want 0 false", reward, done)
		}
		if got := binary.LittleEndian.Uint32(m[mirror.FrameCounter:]); got != i {
			t.Errorf("got frame %d, want %d", got, i)
		}
	}
	if len(e.Frame()) != ppu.FrameSize {
		t.Errorf("got frame of %d bytes, want %d", len(e.Frame()), ppu.FrameSize)
	}

	e.Reset()
	if got := e.Frames(); got != 0 {
		t.Errorf("got %d frames after reset, want 0", got)
	}
}

func TestEnv_HiddenFields(t *testing.T) {
	tests := []struct {
		hidden bool
		want   int
	}{
		{false, VisibleSize},
		{true, MirrorSize},
	}
	for _, tt := range tests {
		e, err := New(rom, HiddenFields(tt.hidden), Mode(types.Color))
		if err != nil {
			t.Fatal(err)
		}
		if got := len(e.Mirror()); got != tt.want {
			t.Errorf("hidden %v: got %d bytes, want %d", tt.hidden, got, tt.want)
		}
		e.Close()
	}
}

func TestEnv_Restore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.state")
	e, err := New(rom, StatePath(path))
	if err != nil {
		t.Fatal(err)
	}
	e.Step(0)
	e.Step(0)
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(rom, path)
	if err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if got := restored.Frames(); got != 2 {
		t.Errorf("got %d frames, want 2", got)
	}
	m, _, _ := restored.Step(0)
	if got := binary.LittleEndian.Uint32(m); got != 3 {
		t.Errorf("got frame %d, want 3", got)
	}
}
