package cpu

import "fmt"

func init() {
	// INC r / DEC r (0x04, 0x05, 0x0C, 0x0D, ...)
	for regIdx := uint8(0); regIdx < 8; regIdx++ {
		incOpcode := 0x04 + regIdx<<3
		decOpcode := 0x05 + regIdx<<3
		if regIdx == 6 {
			DefineInstruction(incOpcode, "INC (HL)", func(c *CPU, operands []byte) {
				c.writeByte(c.HL.Uint16(), c.increment(c.readByte(c.HL.Uint16())))
			}, Cycles(3))
			DefineInstruction(decOpcode, "DEC (HL)", func(c *CPU, operands []byte) {
				c.writeByte(c.HL.Uint16(), c.decrement(c.readByte(c.HL.Uint16())))
			}, Cycles(3))
		} else {
			reg := regIdx
			DefineInstruction(incOpcode, fmt.Sprintf("INC %s", registerName[reg]), func(c *CPU, operands []byte) {
				r := c.registerByIndex(reg)
				*r = c.increment(*r)
			})
			DefineInstruction(decOpcode, fmt.Sprintf("DEC %s", registerName[reg]), func(c *CPU, operands []byte) {
				r := c.registerByIndex(reg)
				*r = c.decrement(*r)
			})
		}
	}

	// the 16-bit INC/DEC touch no flags
	DefineInstruction(0x03, "INC BC", func(c *CPU, operands []byte) {
		c.BC.SetUint16(c.BC.Uint16() + 1)
	}, Cycles(2))
	DefineInstruction(0x13, "INC DE", func(c *CPU, operands []byte) {
		c.DE.SetUint16(c.DE.Uint16() + 1)
	}, Cycles(2))
	DefineInstruction(0x23, "INC HL", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}, Cycles(2))
	DefineInstruction(0x33, "INC SP", func(c *CPU, operands []byte) {
		c.SP++
	}, Cycles(2))
	DefineInstruction(0x0B, "DEC BC", func(c *CPU, operands []byte) {
		c.BC.SetUint16(c.BC.Uint16() - 1)
	}, Cycles(2))
	DefineInstruction(0x1B, "DEC DE", func(c *CPU, operands []byte) {
		c.DE.SetUint16(c.DE.Uint16() - 1)
	}, Cycles(2))
	DefineInstruction(0x2B, "DEC HL", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}, Cycles(2))
	DefineInstruction(0x3B, "DEC SP", func(c *CPU, operands []byte) {
		c.SP--
	}, Cycles(2))

	DefineInstruction(0x09, "ADD HL, BC", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.BC.Uint16()))
	}, Cycles(2))
	DefineInstruction(0x19, "ADD HL, DE", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.DE.Uint16()))
	}, Cycles(2))
	DefineInstruction(0x29, "ADD HL, HL", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.HL.Uint16()))
	}, Cycles(2))
	DefineInstruction(0x39, "ADD HL, SP", func(c *CPU, operands []byte) {
		c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.SP))
	}, Cycles(2))

	// ADD/ADC/SUB/SBC A, r (0x80 - 0x9F)
	for srcIdx := uint8(0); srcIdx < 8; srcIdx++ {
		var read func(c *CPU) uint8
		cycles := uint8(1)
		if srcIdx == 6 {
			read = func(c *CPU) uint8 { return c.readByte(c.HL.Uint16()) }
			cycles = 2
		} else {
			src := srcIdx
			read = func(c *CPU) uint8 { return *c.registerByIndex(src) }
		}

		DefineInstruction(0x80+srcIdx, fmt.Sprintf("ADD A, %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.A = c.add(c.A, read(c), false)
		}, Cycles(cycles))
		DefineInstruction(0x88+srcIdx, fmt.Sprintf("ADC A, %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.A = c.add(c.A, read(c), true)
		}, Cycles(cycles))
		DefineInstruction(0x90+srcIdx, fmt.Sprintf("SUB A, %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.A = c.sub(c.A, read(c), false)
		}, Cycles(cycles))
		DefineInstruction(0x98+srcIdx, fmt.Sprintf("SBC A, %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.A = c.sub(c.A, read(c), true)
		}, Cycles(cycles))
	}

	DefineInstruction(0xC6, "ADD A, n", func(c *CPU, operands []byte) {
		c.A = c.add(c.A, operands[0], false)
	}, Length(2), Cycles(2))
	DefineInstruction(0xCE, "ADC A, n", func(c *CPU, operands []byte) {
		c.A = c.add(c.A, operands[0], true)
	}, Length(2), Cycles(2))
	DefineInstruction(0xD6, "SUB A, n", func(c *CPU, operands []byte) {
		c.A = c.sub(c.A, operands[0], false)
	}, Length(2), Cycles(2))
	DefineInstruction(0xDE, "SBC A, n", func(c *CPU, operands []byte) {
		c.A = c.sub(c.A, operands[0], true)
	}, Length(2), Cycles(2))

	DefineInstruction(0xE8, "ADD SP, e", func(c *CPU, operands []byte) {
		c.SP = c.addSPSigned(operands[0])
	}, Length(2), Cycles(4))
}
