package mmu

// Advance runs any pending VRAM DMA, then advances the time driven
// peripherals by ticks, folding their interrupt requests into IF.
// It returns the number of ticks the video unit was advanced by.
func (m *MMU) Advance(ticks uint32) uint32 {
	dmaTicks := m.HDMA.Perform(m.Video.AcceptsDMARow)
	cpuTicks, baseTicks := m.Scheduler.Split(ticks, dmaTicks)

	m.Timer.Advance(cpuTicks)
	m.Interrupts.Flag |= m.Timer.Interrupt
	m.Timer.Interrupt = 0

	m.Interrupts.Flag |= m.Joypad.Interrupt
	m.Joypad.Interrupt = 0

	m.Video.Advance(baseTicks)
	m.Interrupts.Flag |= m.Video.TakeInterrupt()

	if m.Sound != nil {
		m.Sound.Advance(baseTicks)
	}

	m.Interrupts.Flag |= m.Serial.Interrupt
	m.Serial.Interrupt = 0

	return baseTicks
}

// CommitSpeedSwitch flips between single and double speed if a
// switch was requested through types.KEY1. Classic sessions
// can never request one.
func (m *MMU) CommitSpeedSwitch() {
	m.Scheduler.CommitSpeedSwitch()
}
