// Package cpu provides the default processor collaborator: a core
// parked in HALT with the register file the boot ROM leaves behind.
// It keeps the bus clocked and acknowledges interrupts, which is all
// a session needs to produce frames without an instruction set.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbmirror/internal/interrupts"
	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	haltTicks      = 4
	interruptTicks = 20
)

// Registers is the 8-bit register file.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

// Halted is a processor that only ever waits for interrupts.
// Interrupt handlers are assumed to return immediately, so the
// program counter never leaves the HALT it is parked on.
type Halted struct {
	Registers
	SP  uint16
	PC  uint16
	IME bool

	// Serviced is the vector of the last interrupt acknowledged.
	Serviced uint16
	// Count is the number of interrupts acknowledged.
	Count uint64

	irq  *interrupts.Service
	mode types.Mode
}

// NewHalted returns a processor in its post boot state for mode.
func NewHalted(irq *interrupts.Service, mode types.Mode) *Halted {
	c := &Halted{
		irq:  irq,
		mode: mode,
	}
	c.Reset()
	return c
}

// Reset restores the post boot register file.
func (c *Halted) Reset() {
	r := types.ModelRegisters[c.mode]
	c.Registers = Registers{
		A: r[0], F: r[1],
		B: r[2], C: r[3],
		D: r[4], E: r[5],
		H: r[6], L: r[7],
	}
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = true
	c.Serviced = 0
	c.Count = 0
}

// Step runs one machine cycle of HALT, or acknowledges the
// highest priority pending interrupt, and returns the ticks taken.
func (c *Halted) Step() uint32 {
	if !c.irq.HasInterrupts() {
		return haltTicks
	}
	// with IME clear HALT exits without servicing anything
	if !c.IME {
		return haltTicks
	}
	c.Serviced = c.irq.Vector()
	c.Count++
	return interruptTicks
}

func (c *Halted) String() string {
	return fmt.Sprintf("AF %02X%02X BC %02X%02X DE %02X%02X HL %02X%02X SP %04X PC %04X IME %v",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC, c.IME)
}

var _ types.Stater = (*Halted)(nil)

// Load loads the state of the processor.
func (c *Halted) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.Serviced = s.Read16()
	c.Count = s.Read64()
}

// Save saves the state of the processor.
func (c *Halted) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write16(c.Serviced)
	s.Write64(c.Count)
}
