package cartridge

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gbmirror/internal/cartridge/cartridgetest"
	"github.com/thelolagemann/gbmirror/internal/types"
)

func TestNew_Errors(t *testing.T) {
	good := cartridgetest.Build(cartridgetest.Options{Title: "GOOD"})
	bad := cartridgetest.Build(cartridgetest.Options{Title: "BAD"})
	bad[0x14D]++
	unsupported := cartridgetest.Build(cartridgetest.Options{Type: 0xFC})

	tests := []struct {
		name string
		rom  []byte
		skip bool
		want error
	}{
		{"valid", good, false, nil},
		{"too small", good[:0x14F], false, ErrTooSmall},
		{"checksum", bad, false, ErrChecksum},
		{"checksum skipped", bad, true, nil},
		{"unsupported", unsupported, false, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.rom, tt.skip)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				var he *HeaderError
				if !errors.As(err, &he) {
					t.Errorf("got %T, want *HeaderError", err)
				}
				if c != nil {
					t.Errorf("got a controller alongside an error")
				}
			}
		})
	}
}

func TestHeader(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Title: "POKEMON RED", Type: uint8(MBC3RAMBATT), Banks: 64, RAMSize: 0x03})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Name(); got != "POKEMON RED" {
		t.Errorf("got %q, want %q", got, "POKEMON RED")
	}
	if !c.IsBatteryBacked() {
		t.Errorf("expected battery")
	}
	h := c.Header()
	if h.ROMSize != 1024*1024 || h.RAMSize != 32*1024 {
		t.Errorf("got %d/%d, want %d/%d", h.ROMSize, h.RAMSize, 1024*1024, 32*1024)
	}
	if h.GameboyColor() {
		t.Errorf("unexpected colour support")
	}
}

func TestMBC1_Banking(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Type: uint8(MBC1RAM), Banks: 64, RAMSize: 0x03})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		bank1, bank2 uint8
		want         uint8
	}{
		{0x00, 0x00, 0x01},
		{0x05, 0x00, 0x05},
		{0x1F, 0x00, 0x1F},
		{0x01, 0x01, 0x21},
		{0x00, 0x01, 0x21},
	}
	for _, tt := range tests {
		c.WriteROM(0x2000, tt.bank1)
		c.WriteROM(0x4000, tt.bank2)
		if got := c.ReadROM(0x4000); got != tt.want {
			t.Errorf("bank %02X/%02X: got %02X, want %02X", tt.bank1, tt.bank2, got, tt.want)
		}
	}
	if got := c.ReadROM(0x0000); got != 0x00 {
		t.Errorf("got %02X, want 00", got)
	}

	// RAM is disabled by default
	c.WriteRAM(0xA000, 0x42)
	if got := c.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("got %02X, want FF", got)
	}
	if c.RAMUpdated() {
		t.Errorf("disabled RAM reported as updated")
	}
	c.WriteROM(0x0000, 0x0A)
	c.WriteRAM(0xA000, 0x42)
	if got := c.ReadRAM(0xA000); got != 0x42 {
		t.Errorf("got %02X, want 42", got)
	}
	if !c.RAMUpdated() || c.RAMUpdated() {
		t.Errorf("RAM update not reported exactly once")
	}
}

func TestMBC2_RAM(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Type: uint8(MBC2BATT), Banks: 8})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}
	c.WriteROM(0x0000, 0x0A)
	c.WriteRAM(0xA000, 0xAB)
	if got := c.ReadRAM(0xA200); got != 0xFB {
		t.Errorf("got %02X, want FB", got)
	}
	c.WriteROM(0x0100, 0x03)
	if got := c.ReadROM(0x4000); got != 0x03 {
		t.Errorf("got %02X, want 03", got)
	}
}

func TestMBC5_Banking(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Type: uint8(MBC5RAM), Banks: 512, RAMSize: 0x04})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}
	c.WriteROM(0x2000, 0x00)
	if got := c.ReadROM(0x4000); got != 0x00 {
		t.Errorf("got %02X, want 00", got)
	}
	c.WriteROM(0x2000, 0x02)
	c.WriteROM(0x3000, 0x01)
	if got := c.ReadROM(0x4000); got != 0x02 { // bank 258 holds uint8(258)
		t.Errorf("got %02X, want 02", got)
	}

	c.WriteROM(0x0000, 0x0A)
	c.WriteROM(0x4000, 0x03)
	c.WriteRAM(0xA000, 0x99)
	c.WriteROM(0x4000, 0x00)
	if got := c.ReadRAM(0xA000); got != 0x00 {
		t.Errorf("got %02X, want 00", got)
	}
	c.WriteROM(0x4000, 0x03)
	if got := c.ReadRAM(0xA000); got != 0x99 {
		t.Errorf("got %02X, want 99", got)
	}
}

type fakeClock uint64

func (f *fakeClock) Cycle() uint64 { return uint64(*f) }

func TestMBC3_RTC(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Type: uint8(MBC3TIMERRAMBATT), Banks: 4, RAMSize: 0x03})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}
	var clock fakeClock
	c.(Clocked).AttachClock(&clock)

	c.WriteROM(0x0000, 0x0A)
	clock = cyclesPerSecond * (61*60 + 5) // 1h 1m 5s

	latch := func() {
		c.WriteROM(0x6000, 0x00)
		c.WriteROM(0x6000, 0x01)
	}
	read := func(register uint8) uint8 {
		c.WriteROM(0x4000, register)
		return c.ReadRAM(0xA000)
	}

	latch()
	if s, m, h := read(0x08), read(0x09), read(0x0A); s != 5 || m != 1 || h != 1 {
		t.Errorf("got %02d:%02d:%02d, want 01:01:05", h, m, s)
	}

	// halted clocks don't advance
	c.WriteROM(0x4000, 0x0C)
	c.WriteRAM(0xA000, 0x40)
	clock += cyclesPerSecond * 10
	latch()
	if got := read(0x08); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestLoadRAM(t *testing.T) {
	rom := cartridgetest.Build(cartridgetest.Options{Type: uint8(MBC1RAMBATT), RAMSize: 0x02})
	c, err := New(rom, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.LoadRAM(make([]byte, 10)); !errors.Is(err, ErrRAMSize) {
		t.Errorf("got %v, want %v", err, ErrRAMSize)
	}
	data := make([]byte, 0x2000)
	data[0] = 0x77
	if err := c.LoadRAM(data); err != nil {
		t.Fatal(err)
	}
	dump := c.DumpRAM()
	if dump[0] != 0x77 {
		t.Errorf("got %02X, want 77", dump[0])
	}
	dump[0] = 0
	if c.DumpRAM()[0] != 0x77 {
		t.Errorf("DumpRAM returned a live view")
	}
}

func TestHeader_Mode(t *testing.T) {
	tests := []struct {
		name      string
		flag      uint8
		requested types.Mode
		want      types.Mode
		err       error
	}{
		{"classic", 0x00, types.Classic, types.Classic, nil},
		{"classic supports colour", 0x80, types.Classic, types.Classic, nil},
		{"classic colour only", 0xC0, types.Classic, types.Classic, ErrColorOnly},
		{"colour", 0x80, types.Color, types.Color, nil},
		{"colour only", 0xC0, types.Color, types.Color, nil},
		{"colour as classic", 0x00, types.Color, types.ColorAsClassic, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(cartridgetest.Build(cartridgetest.Options{CGBFlag: tt.flag}), false)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.Header().Mode(tt.requested)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestController_Reset(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		romBank uint16
		stored  uint8
	}{
		{"mbc1", MBC1RAMBATT, 0x2000, 0x05},
		{"mbc2", MBC2BATT, 0x0100, 0xF5},
		{"mbc3", MBC3RAMBATT, 0x2000, 0x05},
		{"mbc5", MBC5RAMBATT, 0x2000, 0x05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(cartridgetest.Build(cartridgetest.Options{Type: uint8(tt.typ), Banks: 8, RAMSize: 0x02}), false)
			if err != nil {
				t.Fatal(err)
			}
			c.WriteROM(0x0000, 0x0A)
			c.WriteROM(tt.romBank, 0x03)
			c.WriteRAM(0xA000, 0x05)
			if got := c.ReadROM(0x4000); got != 0x03 {
				t.Fatalf("got %02X, want 03", got)
			}

			c.Reset()
			if got := c.ReadROM(0x4000); got != 0x01 {
				t.Errorf("got bank %02X after reset, want 01", got)
			}
			if got := c.ReadRAM(0xA000); got != 0xFF {
				t.Errorf("got %02X with RAM disabled, want FF", got)
			}
			c.WriteROM(0x0000, 0x0A)
			if got := c.ReadRAM(0xA000); got != tt.stored {
				t.Errorf("got %02X, want %02X", got, tt.stored)
			}
		})
	}
}
