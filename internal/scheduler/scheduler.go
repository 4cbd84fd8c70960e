// Package scheduler keeps the emulated clock: the running cycle
// count, the processor speed and the split of each instruction's
// tick budget between the processor and the peripherals.
package scheduler

import (
	"fmt"

	"github.com/thelolagemann/gbmirror/internal/types"
)

// Speed is the processor clock multiplier.
type Speed uint32

const (
	Single Speed = 1
	Double Speed = 2
)

// Scheduler tracks elapsed time and the processor speed.
//
// Cycles are counted at the base clock rate (4194304 Hz) so
// that they measure emulated time regardless of speed.
type Scheduler struct {
	cycles          uint64
	speed           Speed
	switchRequested bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{speed: Single}
}

// Reset returns to single speed at cycle 0.
func (s *Scheduler) Reset() {
	*s = Scheduler{speed: Single}
}

// Cycle returns the elapsed base clock cycles.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// Speed returns the current speed multiplier.
func (s *Scheduler) Speed() Speed {
	return s.speed
}

// DoubleSpeed reports whether the processor runs at double speed.
func (s *Scheduler) DoubleSpeed() bool {
	return s.speed == Double
}

// SwitchRequested reports whether a switch is prepared.
func (s *Scheduler) SwitchRequested() bool {
	return s.switchRequested
}

// ReadKEY1 returns the value of types.KEY1.
func (s *Scheduler) ReadKEY1() uint8 {
	v := uint8(0x7E)
	if s.speed == Double {
		v |= types.Bit7
	}
	if s.switchRequested {
		v |= types.Bit0
	}
	return v
}

// WriteKEY1 prepares a speed switch when bit 0 is set. Only
// CommitSpeedSwitch clears a prepared switch.
func (s *Scheduler) WriteKEY1(v uint8) {
	if v&types.Bit0 != 0 {
		s.switchRequested = true
	}
}

// CommitSpeedSwitch toggles the speed if a switch was
// prepared, and clears the request either way.
func (s *Scheduler) CommitSpeedSwitch() {
	if s.switchRequested {
		if s.speed == Double {
			s.speed = Single
		} else {
			s.speed = Double
		}
	}
	s.switchRequested = false
}

// Split divides the ticks of one instruction, plus any ticks
// spent on VRAM DMA, into the ticks seen by the processor clocked
// peripherals and by the base clocked ones. The base clocked
// ticks are added to the cycle count.
func (s *Scheduler) Split(ticks, dmaTicks uint32) (cpuTicks, baseTicks uint32) {
	divider := uint32(s.speed)
	baseTicks = ticks/divider + dmaTicks
	cpuTicks = ticks + dmaTicks*divider
	s.cycles += uint64(baseTicks)
	return cpuTicks, baseTicks
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("cycle %d, speed x%d, switch requested %v", s.cycles, s.speed, s.switchRequested)
}

var _ types.Stater = (*Scheduler)(nil)

func (s *Scheduler) Load(st *types.State) {
	s.cycles = st.Read64()
	s.speed = Speed(st.Read8())
	if s.speed != Double {
		s.speed = Single
	}
	s.switchRequested = st.ReadBool()
}

func (s *Scheduler) Save(st *types.State) {
	st.Write64(s.cycles)
	st.Write8(uint8(s.speed))
	st.WriteBool(s.switchRequested)
}
