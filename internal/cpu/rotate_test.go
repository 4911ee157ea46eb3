package cpu

import "testing"

func TestRotateAccumulator(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.A = 0x85
	run(c, bus, 0x07) // RLCA
	if c.A != 0x0B {
		t.Errorf("expecting A 0x0B, got %#02x", c.A)
	}
	if c.F != FlagCarry {
		t.Errorf("expecting only C set, got %#02x", c.F)
	}

	// RLA shifts the old carry into bit 0
	c.A = 0x95
	run(c, bus, 0x17) // RLA
	if c.A != 0x2B {
		t.Errorf("expecting A 0x2B, got %#02x", c.A)
	}
	if c.F != FlagCarry {
		t.Errorf("expecting only C set, got %#02x", c.F)
	}

	c.A = 0x3B
	c.clearFlag(FlagCarry)
	run(c, bus, 0x1F) // RRA
	if c.A != 0x1D {
		t.Errorf("expecting A 0x1D, got %#02x", c.A)
	}
	if c.F != FlagCarry {
		t.Errorf("expecting only C set, got %#02x", c.F)
	}
}

func TestRotateAccumulatorClearsZero(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.A = 0x00
	c.setFlag(FlagZero)
	run(c, bus, 0x07) // RLCA
	// unlike the 0xCB rotates, the accumulator forms never set Z
	if c.isFlagSet(FlagZero) {
		t.Errorf("expecting Z clear, got %#02x", c.F)
	}
}

func TestRotateRegister(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.B = 0x85
	ticks := run(c, bus, 0xCB, 0x00) // RLC B
	if c.B != 0x0B {
		t.Errorf("expecting B 0x0B, got %#02x", c.B)
	}
	if c.F != FlagCarry {
		t.Errorf("expecting only C set, got %#02x", c.F)
	}
	if ticks != 8 {
		t.Errorf("expecting 8 ticks, got %d", ticks)
	}

	c.C = 0x00
	run(c, bus, 0xCB, 0x09) // RRC C
	if !c.isFlagSet(FlagZero) {
		t.Errorf("expecting Z set on zero result, got %#02x", c.F)
	}
}

func TestRotateMemory(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.HL.SetUint16(0xC000)
	bus.mem[0xC000] = 0x01
	ticks := run(c, bus, 0xCB, 0x0E) // RRC (HL)
	if bus.mem[0xC000] != 0x80 {
		t.Errorf("expecting (HL) 0x80, got %#02x", bus.mem[0xC000])
	}
	if c.F != FlagCarry {
		t.Errorf("expecting only C set, got %#02x", c.F)
	}
	if ticks != 16 {
		t.Errorf("expecting 16 ticks, got %d", ticks)
	}
}

func TestShift(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.D = 0x80
	run(c, bus, 0xCB, 0x22) // SLA D
	if c.D != 0x00 {
		t.Errorf("expecting D 0x00, got %#02x", c.D)
	}
	if c.F != FlagZero|FlagCarry {
		t.Errorf("expecting Z and C set, got %#02x", c.F)
	}

	// SRA keeps the sign bit
	c.E = 0x8A
	run(c, bus, 0xCB, 0x2B) // SRA E
	if c.E != 0xC5 {
		t.Errorf("expecting E 0xC5, got %#02x", c.E)
	}
	if c.F != 0 {
		t.Errorf("expecting no flags, got %#02x", c.F)
	}

	// SRL always clears bit 7
	c.A = 0x01
	run(c, bus, 0xCB, 0x3F) // SRL A
	if c.A != 0x00 {
		t.Errorf("expecting A 0x00, got %#02x", c.A)
	}
	if c.F != FlagZero|FlagCarry {
		t.Errorf("expecting Z and C set, got %#02x", c.F)
	}
}

func TestSwap(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.A = 0xF1
	run(c, bus, 0xCB, 0x37) // SWAP A
	if c.A != 0x1F {
		t.Errorf("expecting A 0x1F, got %#02x", c.A)
	}
	if c.F != 0 {
		t.Errorf("expecting no flags, got %#02x", c.F)
	}

	c.B = 0x00
	run(c, bus, 0xCB, 0x30) // SWAP B
	if c.F != FlagZero {
		t.Errorf("expecting only Z set, got %#02x", c.F)
	}
}
