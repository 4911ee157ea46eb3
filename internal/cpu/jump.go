package cpu

import "fmt"

// condition names the four branch conditions in opcode order.
var conditionName = [4]string{"NZ", "Z", "NC", "C"}

// conditionMet evaluates the branch condition encoded by bits 3-4 of
// a conditional opcode.
func (c *CPU) conditionMet(condition uint8) bool {
	switch condition {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

// jumpRelative adds the signed offset to PC.
//
//	JR e
//	e = signed 8-bit offset
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
}

// jumpAbsolute sets PC to the given address.
//
//	JP nn
//	nn = 16-bit address
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
}

// call pushes PC and jumps to the given address.
//
//	CALL nn
//	nn = 16-bit address
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// ret pops the return address into PC.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
}

func init() {
	DefineInstruction(0x18, "JR e", func(c *CPU, operands []byte) {
		c.jumpRelative(operands[0])
	}, Length(2), Cycles(3))
	DefineInstruction(0xC3, "JP nn", func(c *CPU, operands []byte) {
		c.jumpAbsolute(uint16(operands[1])<<8 | uint16(operands[0]))
	}, Length(3), Cycles(4))
	DefineInstruction(0xE9, "JP HL", func(c *CPU, operands []byte) {
		c.jumpAbsolute(c.HL.Uint16())
	})
	DefineInstruction(0xCD, "CALL nn", func(c *CPU, operands []byte) {
		c.call(uint16(operands[1])<<8 | uint16(operands[0]))
	}, Length(3), Cycles(6))
	DefineInstruction(0xC9, "RET", func(c *CPU, operands []byte) {
		c.ret()
	}, Cycles(4))
	DefineInstruction(0xD9, "RETI", func(c *CPU, operands []byte) {
		c.ret()
		// unlike EI, the enable takes effect immediately
		c.ime = true
	}, Cycles(4))

	for condIdx := uint8(0); condIdx < 4; condIdx++ {
		cond := condIdx

		DefineInstruction(0x20+cond<<3, fmt.Sprintf("JR %s, e", conditionName[cond]), func(c *CPU, operands []byte) {
			if c.conditionMet(cond) {
				c.jumpRelative(operands[0])
				c.branch(1)
			}
		}, Length(2), Cycles(2))
		DefineInstruction(0xC2+cond<<3, fmt.Sprintf("JP %s, nn", conditionName[cond]), func(c *CPU, operands []byte) {
			if c.conditionMet(cond) {
				c.jumpAbsolute(uint16(operands[1])<<8 | uint16(operands[0]))
				c.branch(1)
			}
		}, Length(3), Cycles(3))
		DefineInstruction(0xC4+cond<<3, fmt.Sprintf("CALL %s, nn", conditionName[cond]), func(c *CPU, operands []byte) {
			if c.conditionMet(cond) {
				c.call(uint16(operands[1])<<8 | uint16(operands[0]))
				c.branch(3)
			}
		}, Length(3), Cycles(3))
		DefineInstruction(0xC0+cond<<3, fmt.Sprintf("RET %s", conditionName[cond]), func(c *CPU, operands []byte) {
			if c.conditionMet(cond) {
				c.ret()
				c.branch(3)
			}
		}, Cycles(2))
	}

	// RST jumps to one of the eight fixed vectors
	for vecIdx := uint8(0); vecIdx < 8; vecIdx++ {
		vector := uint16(vecIdx) * 8
		DefineInstruction(0xC7+vecIdx<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU, operands []byte) {
			c.call(vector)
		}, Cycles(4))
	}
}
