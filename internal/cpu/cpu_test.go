package cpu

import (
	"testing"

	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

// testBus is a flat 64 KiB memory with none of the bus's routing,
// enough to execute any instruction.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read8(address uint16) uint8 {
	return b.mem[address]
}

func (b *testBus) Write8(address uint16, value uint8) {
	b.mem[address] = value
}

func (b *testBus) Read16(address uint16) uint16 {
	return uint16(b.mem[address]) | uint16(b.mem[address+1])<<8
}

func (b *testBus) Write16(address uint16, value uint16) {
	b.mem[address] = uint8(value)
	b.mem[address+1] = uint8(value >> 8)
}

func newTestCPU() (*CPU, *testBus, *interrupts.Service) {
	bus := &testBus{}
	irq := interrupts.NewService()
	c := NewCPU(bus, irq, log.NewNullLogger())
	c.SP = 0xFFFE
	c.PC = 0x0100
	return c, bus, irq
}

// run places the program at PC and executes one instruction,
// returning the consumed T-cycles.
func run(c *CPU, bus *testBus, program ...uint8) uint32 {
	copy(bus.mem[c.PC:], program)
	return c.Cycle()
}

func TestNop(t *testing.T) {
	c, bus, _ := newTestCPU()
	ticks := run(c, bus, 0x00)
	if ticks != 4 {
		t.Errorf("expecting 4 ticks, got %d", ticks)
	}
	if c.PC != 0x0101 {
		t.Errorf("expecting PC 0x0101, got %#04x", c.PC)
	}
}

func TestSkipBoot(t *testing.T) {
	c, _, _ := newTestCPU()
	c.SkipBoot()
	if c.AF.Uint16() != 0x01B0 {
		t.Errorf("expecting AF 0x01B0, got %#04x", c.AF.Uint16())
	}
	if c.BC.Uint16() != 0x0013 {
		t.Errorf("expecting BC 0x0013, got %#04x", c.BC.Uint16())
	}
	if c.DE.Uint16() != 0x00D8 {
		t.Errorf("expecting DE 0x00D8, got %#04x", c.DE.Uint16())
	}
	if c.HL.Uint16() != 0x014D {
		t.Errorf("expecting HL 0x014D, got %#04x", c.HL.Uint16())
	}
	if c.SP != 0xFFFE {
		t.Errorf("expecting SP 0xFFFE, got %#04x", c.SP)
	}
	if c.PC != 0x0100 {
		t.Errorf("expecting PC 0x0100, got %#04x", c.PC)
	}
}

func TestInterruptDispatch(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.ime = true
	irq.Enable = interrupts.TimerFlag
	irq.Request(interrupts.TimerFlag)

	ticks := run(c, bus, 0x00)
	if ticks != 16 {
		t.Errorf("expecting 16 ticks for dispatch, got %d", ticks)
	}
	if c.PC != 0x0050 {
		t.Errorf("expecting PC at timer vector 0x0050, got %#04x", c.PC)
	}
	if c.ime {
		t.Error("expecting IME cleared after dispatch")
	}
	if irq.ReadFlag()&interrupts.TimerFlag != 0 {
		t.Error("expecting timer flag cleared after dispatch")
	}
	// return address on the stack
	if got := bus.Read16(c.SP); got != 0x0100 {
		t.Errorf("expecting return address 0x0100 on stack, got %#04x", got)
	}
}

func TestInterruptPriority(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.ime = true
	irq.Enable = interrupts.VBlankFlag | interrupts.LCDFlag
	irq.Request(interrupts.LCDFlag)
	irq.Request(interrupts.VBlankFlag)

	run(c, bus, 0x00)
	if c.PC != 0x0040 {
		t.Errorf("expecting VBlank vector 0x0040 to win, got %#04x", c.PC)
	}
	if irq.ReadFlag()&interrupts.LCDFlag == 0 {
		t.Error("expecting LCD flag to remain pending")
	}
}

func TestInterruptMasked(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.ime = true
	irq.Request(interrupts.TimerFlag)

	// not enabled in IE, so the NOP executes instead
	run(c, bus, 0x00)
	if c.PC != 0x0101 {
		t.Errorf("expecting masked interrupt to be ignored, PC %#04x", c.PC)
	}
}

func TestEIDelay(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = interrupts.VBlankFlag
	irq.Request(interrupts.VBlankFlag)

	// EI enables after the following instruction, so the NOP runs
	// before the interrupt is taken
	run(c, bus, 0xFB, 0x00)
	if c.ime {
		t.Error("expecting IME still clear directly after EI")
	}
	c.Cycle()
	if c.PC != 0x0102 {
		t.Errorf("expecting the instruction after EI to execute, PC %#04x", c.PC)
	}
	if !c.ime {
		t.Error("expecting IME set after the instruction following EI")
	}
	c.Cycle()
	if c.PC != 0x0040 {
		t.Errorf("expecting dispatch after EI delay, PC %#04x", c.PC)
	}
}

func TestEIThenDI(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = interrupts.VBlankFlag
	irq.Request(interrupts.VBlankFlag)

	// EI; DI leaves no window for the interrupt
	run(c, bus, 0xFB, 0xF3, 0x00)
	c.Cycle()
	c.Cycle()
	if c.PC != 0x0103 {
		t.Errorf("expecting no interrupt window, PC %#04x", c.PC)
	}
	if c.ime {
		t.Error("expecting IME clear after DI")
	}
}

func TestHaltIdlesUntilInterrupt(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.ime = true
	irq.Enable = interrupts.TimerFlag

	run(c, bus, 0x76, 0x00)
	if !c.Halted() {
		t.Error("expecting CPU halted")
	}
	if ticks := c.Cycle(); ticks != 4 {
		t.Errorf("expecting 4 idle ticks while halted, got %d", ticks)
	}
	if c.PC != 0x0101 {
		t.Errorf("expecting PC unchanged while halted, got %#04x", c.PC)
	}

	irq.Request(interrupts.TimerFlag)
	c.Cycle()
	if c.Halted() {
		t.Error("expecting CPU unhalted by interrupt")
	}
	if c.PC != 0x0050 {
		t.Errorf("expecting dispatch to timer vector, PC %#04x", c.PC)
	}
}

func TestHaltWakesWithoutIME(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = interrupts.TimerFlag

	run(c, bus, 0x00, 0x76, 0x00)
	c.Cycle()
	if !c.Halted() {
		t.Error("expecting CPU halted")
	}

	// pending interrupt unhalts, but with IME clear it is not
	// serviced; execution resumes after the HALT
	irq.Request(interrupts.TimerFlag)
	c.Cycle()
	if c.Halted() {
		t.Error("expecting CPU unhalted")
	}
	if c.PC != 0x0103 {
		t.Errorf("expecting execution resumed after HALT, PC %#04x", c.PC)
	}
	if irq.ReadFlag()&interrupts.TimerFlag == 0 {
		t.Error("expecting timer flag still pending")
	}
}

func TestHaltBug(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = interrupts.TimerFlag
	irq.Request(interrupts.TimerFlag)

	// IME clear with a pending interrupt: HALT is skipped and the
	// following byte is fetched twice. INC A therefore runs twice.
	run(c, bus, 0x76, 0x3C, 0x00)
	if c.Halted() {
		t.Error("expecting HALT skipped under the halt bug")
	}
	c.Cycle()
	c.Cycle()
	if c.A != 0x02 {
		t.Errorf("expecting INC A executed twice, A %#02x", c.A)
	}
	if c.PC != 0x0102 {
		t.Errorf("expecting PC 0x0102, got %#04x", c.PC)
	}
}

func TestStack(t *testing.T) {
	c, _, _ := newTestCPU()
	c.pushStack(0x1234)
	if c.SP != 0xFFFC {
		t.Errorf("expecting SP 0xFFFC, got %#04x", c.SP)
	}
	if got := c.popStack(); got != 0x1234 {
		t.Errorf("expecting 0x1234, got %#04x", got)
	}
	if c.SP != 0xFFFE {
		t.Errorf("expecting SP restored to 0xFFFE, got %#04x", c.SP)
	}
}

func TestIllegalOpcodeLogged(t *testing.T) {
	c, bus, _ := newTestCPU()
	run(c, bus, 0xD3)
	if c.PC != 0x0101 {
		t.Errorf("expecting PC advanced past illegal opcode, got %#04x", c.PC)
	}
}
