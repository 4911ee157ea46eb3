package cpu

import "fmt"

func init() {
	// AND/XOR/OR/CP A, r (0xA0 - 0xBF)
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

		DefineInstruction(0xA0+srcIdx, fmt.Sprintf("AND %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.and(read(c))
		}, Cycles(cycles))
		DefineInstruction(0xA8+srcIdx, fmt.Sprintf("XOR %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.xor(read(c))
		}, Cycles(cycles))
		DefineInstruction(0xB0+srcIdx, fmt.Sprintf("OR %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.or(read(c))
		}, Cycles(cycles))
		DefineInstruction(0xB8+srcIdx, fmt.Sprintf("CP %s", registerName[srcIdx]), func(c *CPU, operands []byte) {
			c.compare(read(c))
		}, Cycles(cycles))
	}

	DefineInstruction(0xE6, "AND n", func(c *CPU, operands []byte) {
		c.and(operands[0])
	}, Length(2), Cycles(2))
	DefineInstruction(0xEE, "XOR n", func(c *CPU, operands []byte) {
		c.xor(operands[0])
	}, Length(2), Cycles(2))
	DefineInstruction(0xF6, "OR n", func(c *CPU, operands []byte) {
		c.or(operands[0])
	}, Length(2), Cycles(2))
	DefineInstruction(0xFE, "CP n", func(c *CPU, operands []byte) {
		c.compare(operands[0])
	}, Length(2), Cycles(2))
}
