package cpu

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU, operands []byte) {})

	// STOP consumes its following byte; low-power mode itself is a DMG
	// detail with no observable effect here
	DefineInstruction(0x10, "STOP", func(c *CPU, operands []byte) {}, Length(2))

	DefineInstruction(0x27, "DAA", func(c *CPU, operands []byte) {
		c.daa()
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU, operands []byte) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU, operands []byte) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU, operands []byte) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})

	DefineInstruction(0x76, "HALT", func(c *CPU, operands []byte) {
		if !c.ime && c.irq.HasPending() {
			// the halt bug: the halt is skipped and the next opcode
			// byte is fetched twice
			c.haltBug = true
		} else {
			c.halted = true
		}
	})

	DefineInstruction(0xF3, "DI", func(c *CPU, operands []byte) {
		c.ime = false
		c.imePending = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU, operands []byte) {
		c.imePending = true
	})
}
