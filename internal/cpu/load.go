package cpu

import "fmt"

// loadRegisterToRegister loads the value of the source register into
// the destination register.
//
//	LD r, r'
//	r, r' = 8-bit registers
func (c *CPU) loadRegisterToRegister(dst, src *Register) {
	*dst = *src
}

// loadMemoryToRegister loads the value at the given address into the
// destination register.
//
//	LD r, (nn)
//	r = 8-bit register
//	nn = 16-bit address
func (c *CPU) loadMemoryToRegister(dst *Register, address uint16) {
	*dst = c.readByte(address)
}

// loadRegisterToMemory stores the value of the source register at the
// given address.
//
//	LD (nn), r
//	r = 8-bit register
//	nn = 16-bit address
func (c *CPU) loadRegisterToMemory(src *Register, address uint16) {
	c.writeByte(address, *src)
}

func init() {
	// LD r, r' (0x40 - 0x7F); 0x76 is HALT, defined elsewhere
	for srcIdx := uint8(0); srcIdx < 8; srcIdx++ {
		for dstIdx := uint8(0); dstIdx < 8; dstIdx++ {
			opcode := 0x40 + dstIdx<<3 + srcIdx
			if opcode == 0x76 {
				continue
			}
			name := fmt.Sprintf("LD %s, %s", registerName[dstIdx], registerName[srcIdx])
			switch {
			case srcIdx == 6:
				dst := dstIdx
				DefineInstruction(opcode, name, func(c *CPU, operands []byte) {
					c.loadMemoryToRegister(c.registerByIndex(dst), c.HL.Uint16())
				}, Cycles(2))
			case dstIdx == 6:
				src := srcIdx
				DefineInstruction(opcode, name, func(c *CPU, operands []byte) {
					c.loadRegisterToMemory(c.registerByIndex(src), c.HL.Uint16())
				}, Cycles(2))
			default:
				src, dst := srcIdx, dstIdx
				DefineInstruction(opcode, name, func(c *CPU, operands []byte) {
					c.loadRegisterToRegister(c.registerByIndex(dst), c.registerByIndex(src))
				})
			}
		}
	}

	// LD r, n (0x06, 0x0E, ... 0x3E)
	for dstIdx := uint8(0); dstIdx < 8; dstIdx++ {
		opcode := 0x06 + dstIdx<<3
		name := fmt.Sprintf("LD %s, n", registerName[dstIdx])
		if dstIdx == 6 {
			DefineInstruction(opcode, name, func(c *CPU, operands []byte) {
				c.writeByte(c.HL.Uint16(), operands[0])
			}, Length(2), Cycles(3))
		} else {
			dst := dstIdx
			DefineInstruction(opcode, name, func(c *CPU, operands []byte) {
				*c.registerByIndex(dst) = operands[0]
			}, Length(2), Cycles(2))
		}
	}

	DefineInstruction(0x01, "LD BC, nn", func(c *CPU, operands []byte) {
		c.BC.SetUint16(uint16(operands[1])<<8 | uint16(operands[0]))
	}, Length(3), Cycles(3))
	DefineInstruction(0x11, "LD DE, nn", func(c *CPU, operands []byte) {
		c.DE.SetUint16(uint16(operands[1])<<8 | uint16(operands[0]))
	}, Length(3), Cycles(3))
	DefineInstruction(0x21, "LD HL, nn", func(c *CPU, operands []byte) {
		c.HL.SetUint16(uint16(operands[1])<<8 | uint16(operands[0]))
	}, Length(3), Cycles(3))
	DefineInstruction(0x31, "LD SP, nn", func(c *CPU, operands []byte) {
		c.SP = uint16(operands[1])<<8 | uint16(operands[0])
	}, Length(3), Cycles(3))

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, c.BC.Uint16())
	}, Cycles(2))
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, c.DE.Uint16())
	}, Cycles(2))
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, c.BC.Uint16())
	}, Cycles(2))
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, c.DE.Uint16())
	}, Cycles(2))

	// the post-increment/decrement loads walk HL
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}, Cycles(2))
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}, Cycles(2))
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}, Cycles(2))
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}, Cycles(2))

	// LD (nn), SP stores the stack pointer little endian
	DefineInstruction(0x08, "LD (nn), SP", func(c *CPU, operands []byte) {
		address := uint16(operands[1])<<8 | uint16(operands[0])
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	}, Length(3), Cycles(5))

	// the high-page (0xFF00+) loads
	DefineInstruction(0xE0, "LDH (n), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, 0xFF00+uint16(operands[0]))
	}, Length(2), Cycles(3))
	DefineInstruction(0xF0, "LDH A, (n)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, 0xFF00+uint16(operands[0]))
	}, Length(2), Cycles(3))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, 0xFF00+uint16(c.C))
	}, Cycles(2))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, 0xFF00+uint16(c.C))
	}, Cycles(2))

	DefineInstruction(0xEA, "LD (nn), A", func(c *CPU, operands []byte) {
		c.loadRegisterToMemory(&c.A, uint16(operands[1])<<8|uint16(operands[0]))
	}, Length(3), Cycles(4))
	DefineInstruction(0xFA, "LD A, (nn)", func(c *CPU, operands []byte) {
		c.loadMemoryToRegister(&c.A, uint16(operands[1])<<8|uint16(operands[0]))
	}, Length(3), Cycles(4))

	DefineInstruction(0xF8, "LD HL, SP+e", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.addSPSigned(operands[0]))
	}, Length(2), Cycles(3))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU, operands []byte) {
		c.SP = c.HL.Uint16()
	}, Cycles(2))

	// PUSH/POP rr; POP AF keeps the low nibble of F clear
	DefineInstruction(0xC5, "PUSH BC", func(c *CPU, operands []byte) {
		c.pushStack(c.BC.Uint16())
	}, Cycles(4))
	DefineInstruction(0xD5, "PUSH DE", func(c *CPU, operands []byte) {
		c.pushStack(c.DE.Uint16())
	}, Cycles(4))
	DefineInstruction(0xE5, "PUSH HL", func(c *CPU, operands []byte) {
		c.pushStack(c.HL.Uint16())
	}, Cycles(4))
	DefineInstruction(0xF5, "PUSH AF", func(c *CPU, operands []byte) {
		c.pushStack(c.AF.Uint16())
	}, Cycles(4))
	DefineInstruction(0xC1, "POP BC", func(c *CPU, operands []byte) {
		c.BC.SetUint16(c.popStack())
	}, Cycles(3))
	DefineInstruction(0xD1, "POP DE", func(c *CPU, operands []byte) {
		c.DE.SetUint16(c.popStack())
	}, Cycles(3))
	DefineInstruction(0xE1, "POP HL", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.popStack())
	}, Cycles(3))
	DefineInstruction(0xF1, "POP AF", func(c *CPU, operands []byte) {
		c.AF.SetUint16(c.popStack() & 0xFFF0)
	}, Cycles(3))
}
