package cartridge

import (
	"github.com/thelolagemann/gbmirror/internal/types"
)

// cyclesPerSecond is the base clock rate the RTC counts in.
const cyclesPerSecond = 4194304

// RTC is the MBC3 real time clock. It advances with emulated
// time rather than the host's wall clock, so a session replays
// identically.
type RTC struct {
	Seconds              uint8
	Minutes              uint8
	Hours                uint8
	DaysLower            uint8
	DaysHigherAndControl uint8

	latched [5]uint8

	LastCycle uint64
}

// halted reports whether DH bit 6 stops the clock.
func (r *RTC) halted() bool {
	return r.DaysHigherAndControl&types.Bit6 != 0
}

// Update advances the clock to now, counted in emulated cycles.
func (r *RTC) Update(now uint64) {
	if now < r.LastCycle {
		r.LastCycle = now
		return
	}
	elapsed := (now - r.LastCycle) / cyclesPerSecond
	if elapsed == 0 {
		return
	}
	r.LastCycle += elapsed * cyclesPerSecond
	if r.halted() {
		return
	}

	total := uint64(r.Seconds) + elapsed
	r.Seconds = uint8(total % 60)
	total = uint64(r.Minutes) + total/60
	r.Minutes = uint8(total % 60)
	total = uint64(r.Hours) + total/60
	r.Hours = uint8(total % 24)

	days := uint64(r.DaysLower) | uint64(r.DaysHigherAndControl&types.Bit0)<<8
	days += total / 24
	if days >= 512 {
		days %= 512
		r.DaysHigherAndControl |= types.Bit7 // day counter carry
	}
	r.DaysLower = uint8(days)
	r.DaysHigherAndControl = r.DaysHigherAndControl&^types.Bit0 | uint8(days>>8)&types.Bit0
}

func (r *RTC) latch() {
	r.latched = [5]uint8{r.Seconds, r.Minutes, r.Hours, r.DaysLower, r.DaysHigherAndControl}
}

func (r *RTC) write(register, value uint8) {
	switch register {
	case 0x8:
		r.Seconds = value & 0x3F
	case 0x9:
		r.Minutes = value & 0x3F
	case 0xA:
		r.Hours = value & 0x1F
	case 0xB:
		r.DaysLower = value
	case 0xC:
		r.DaysHigherAndControl = value & 0xC1
	}
}

// MemoryBankedCartridge3 represents a MBC3 cartridge, with up to
// 2MB of ROM, 32kB of RAM and, on some types, a real time clock
// whose registers are mapped into the RAM window.
type MemoryBankedCartridge3 struct {
	rom     []byte
	romBank uint8

	// ramBank is a RAM bank (0-3) or an RTC register (8-C)
	ramBank    uint8
	ramEnabled bool

	hasRTC     bool
	rtc        RTC
	latchValue uint8
	clock      Clock

	*base
}

// newMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func newMemoryBankedCartridge3(rom []byte, b *base) *MemoryBankedCartridge3 {
	b.ram = make([]byte, b.header.RAMSize)
	return &MemoryBankedCartridge3{
		rom:     rom,
		romBank: 1,
		hasRTC:  b.header.CartridgeType == MBC3TIMERBATT || b.header.CartridgeType == MBC3TIMERRAMBATT,
		base:    b,
	}
}

func (m *MemoryBankedCartridge3) Reset() {
	m.romBank, m.ramBank = 1, 0
	m.ramEnabled = false
	m.latchValue = 0
}

var _ Clocked = (*MemoryBankedCartridge3)(nil)

// AttachClock sets the source of emulated time for the RTC.
func (m *MemoryBankedCartridge3) AttachClock(c Clock) {
	m.clock = c
	m.rtc.LastCycle = c.Cycle()
}

func (m *MemoryBankedCartridge3) now() uint64 {
	if m.clock == nil {
		return m.rtc.LastCycle
	}
	return m.clock.Cycle()
}

func (m *MemoryBankedCartridge3) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address]
	}
	offset := int(m.romBank) % bankCount(m.rom, 0x4000) * 0x4000
	return m.rom[offset+int(address&0x3FFF)]
}

// WriteROM attempts to switch the ROM or RAM bank, or latches the RTC.
func (m *MemoryBankedCartridge3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value & 0x0F
	default:
		if m.hasRTC && m.latchValue == 0x00 && value == 0x01 {
			m.rtc.Update(m.now())
			m.rtc.latch()
		}
		m.latchValue = value
	}
}

func (m *MemoryBankedCartridge3) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	switch {
	case m.ramBank <= 0x03:
		offset := int(m.ramBank)%bankCount(m.ram, 0x2000)*0x2000 + int(address&0x1FFF)
		return m.readRAM(offset)
	case m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C:
		return m.rtc.latched[m.ramBank-0x08]
	}
	return 0xFF
}

func (m *MemoryBankedCartridge3) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	switch {
	case m.ramBank <= 0x03:
		offset := int(m.ramBank)%bankCount(m.ram, 0x2000)*0x2000 + int(address&0x1FFF)
		m.writeRAM(offset, value)
	case m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C:
		m.rtc.Update(m.now())
		m.rtc.write(m.ramBank, value)
	}
}

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.latchValue = s.Read8()
	m.rtc.Seconds = s.Read8()
	m.rtc.Minutes = s.Read8()
	m.rtc.Hours = s.Read8()
	m.rtc.DaysLower = s.Read8()
	m.rtc.DaysHigherAndControl = s.Read8()
	s.ReadData(m.rtc.latched[:])
	m.rtc.LastCycle = s.Read64()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.latchValue)
	s.Write8(m.rtc.Seconds)
	s.Write8(m.rtc.Minutes)
	s.Write8(m.rtc.Hours)
	s.Write8(m.rtc.DaysLower)
	s.Write8(m.rtc.DaysHigherAndControl)
	s.WriteData(m.rtc.latched[:])
	s.Write64(m.rtc.LastCycle)
	s.WriteData(m.ram)
}
