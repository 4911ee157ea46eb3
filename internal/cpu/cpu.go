// Package cpu implements the SM83 core: fetch, decode and execute of
// the 256 base and 256 0xCB-prefixed opcodes, flag bookkeeping, and
// interrupt dispatch. One call to Cycle runs one instruction (or one
// interrupt entry) and reports the consumed T-cycles, which the
// caller fans out to the clocked components.
package cpu

import (
	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

// Bus is the CPU's view of the memory bus.
type Bus interface {
	Read8(address uint16) uint8
	Write8(address uint16, value uint8)
	Read16(address uint16) uint16
	Write16(address uint16, value uint16)
}

// interruptCycles is the T-cycle cost of an interrupt entry.
const interruptCycles = 16

// haltCycles is the T-cycle cost of one idle step while halted.
const haltCycles = 4

// CPU is the SM83 core.
type CPU struct {
	Registers
	SP uint16
	PC uint16

	// ime gates all maskable interrupts; imePending models EI's
	// one-instruction delay.
	ime        bool
	imePending bool

	halted bool
	// haltBug: HALT with interrupts disabled but pending skips the
	// halt and makes the next fetch read the same byte twice.
	haltBug bool

	// extraCycles collects the M-cycles added by taken branches
	// during the current instruction.
	extraCycles uint8

	bus Bus
	irq *interrupts.Service
	log log.Logger
}

// NewCPU returns a CPU fetching through the given bus and servicing
// interrupts from the given service. All registers start at zero, as
// if the boot ROM were about to run.
func NewCPU(bus Bus, irq *interrupts.Service, logger log.Logger) *CPU {
	c := &CPU{
		bus: bus,
		irq: irq,
		log: logger,
	}
	c.Registers.init()
	return c
}

// SkipBoot places the CPU in the state the DMG boot ROM leaves
// behind: entry point 0x0100 with the documented register values.
func (c *CPU) SkipBoot() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Cycle services one pending interrupt if possible, or executes one
// instruction, returning the number of T-cycles consumed.
func (c *CPU) Cycle() uint32 {
	// a pending, enabled interrupt preempts the next fetch
	if c.ime && c.irq.HasPending() {
		c.halted = false
		c.serviceInterrupt()
		return interruptCycles
	}

	if c.halted {
		if c.irq.HasPending() {
			// pending interrupts unhalt even with IME cleared; they
			// are only serviced once IME is set
			c.halted = false
		} else {
			return haltCycles
		}
	}

	// EI's enable lands after the instruction that follows it, so
	// promote it after the interrupt check but before the execute
	if c.imePending {
		c.imePending = false
		c.ime = true
	}

	opcode := c.readInstruction()
	instruction := &InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = &InstructionSetCB[c.readInstruction()]
	}

	var operands [2]byte
	for i := uint8(1); i < instruction.length; i++ {
		operands[i-1] = c.readOperand()
	}

	c.extraCycles = 0
	instruction.fn(c, operands[:])

	return uint32(instruction.cycles+c.extraCycles) * 4
}

// serviceInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, clearing its flag and the master
// enable.
func (c *CPU) serviceInterrupt() {
	c.ime = false
	vector := c.irq.Vector()
	c.pushStack(c.PC)
	c.PC = vector
}

// readInstruction fetches the byte at PC and advances. Under the
// halt bug the advance is suppressed once, so the byte is fetched
// twice.
func (c *CPU) readInstruction() uint8 {
	value := c.bus.Read8(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand fetches an operand byte at PC and advances.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read8(c.PC)
	c.PC++
	return value
}

// readByte reads a byte through the bus.
func (c *CPU) readByte(address uint16) uint8 {
	return c.bus.Read8(address)
}

// writeByte writes a byte through the bus.
func (c *CPU) writeByte(address uint16, value uint8) {
	c.bus.Write8(address, value)
}

// pushStack pushes a 16-bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.bus.Write8(c.SP-1, uint8(value>>8))
	c.bus.Write8(c.SP-2, uint8(value))
	c.SP -= 2
}

// popStack pops a 16-bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.bus.Read8(c.SP))
	upper := uint16(c.bus.Read8(c.SP+1)) << 8
	c.SP += 2
	return lower | upper
}

// branch records the extra M-cycles of a taken conditional branch.
func (c *CPU) branch(cycles uint8) {
	c.extraCycles += cycles
}
