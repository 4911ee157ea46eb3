package cpu

import "fmt"

// defineCBOperation registers the eight register variants of one
// read-modify-write 0xCB operation. The (HL) variant reads, applies
// and writes back at twice the register cost.
func defineCBOperation(base uint8, name string, fn func(c *CPU, value uint8) uint8) {
	for srcIdx := uint8(0); srcIdx < 8; srcIdx++ {
		fullName := fmt.Sprintf("%s %s", name, registerName[srcIdx])
		if srcIdx == 6 {
			DefineCBInstruction(base+srcIdx, fullName, func(c *CPU, operands []byte) {
				c.writeByte(c.HL.Uint16(), fn(c, c.readByte(c.HL.Uint16())))
			}, Cycles(4))
		} else {
			src := srcIdx
			DefineCBInstruction(base+srcIdx, fullName, func(c *CPU, operands []byte) {
				r := c.registerByIndex(src)
				*r = fn(c, *r)
			})
		}
	}
}

// rotateLeftCircular rotates the value left, copying bit 7 into both
// the carry and bit 0.
//
//	RLC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCircular(value uint8) uint8 {
	rotated := value<<1 | value>>7
	c.setFlags(rotated == 0, false, false, value&0x80 != 0)
	return rotated
}

// rotateRightCircular rotates the value right, copying bit 0 into
// both the carry and bit 7.
//
//	RRC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCircular(value uint8) uint8 {
	rotated := value>>1 | value<<7
	c.setFlags(rotated == 0, false, false, value&0x01 != 0)
	return rotated
}

// rotateLeft rotates the value left through the carry flag.
//
//	RL n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(value uint8) uint8 {
	rotated := value << 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 0x01
	}
	c.setFlags(rotated == 0, false, false, value&0x80 != 0)
	return rotated
}

// rotateRight rotates the value right through the carry flag.
//
//	RR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(value uint8) uint8 {
	rotated := value >> 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 0x80
	}
	c.setFlags(rotated == 0, false, false, value&0x01 != 0)
	return rotated
}

func init() {
	// the accumulator rotates always clear Z, unlike their 0xCB twins
	DefineInstruction(0x07, "RLCA", func(c *CPU, operands []byte) {
		c.A = c.rotateLeftCircular(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU, operands []byte) {
		c.A = c.rotateRightCircular(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU, operands []byte) {
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU, operands []byte) {
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	})

	defineCBOperation(0x00, "RLC", (*CPU).rotateLeftCircular)
	defineCBOperation(0x08, "RRC", (*CPU).rotateRightCircular)
	defineCBOperation(0x10, "RL", (*CPU).rotateLeft)
	defineCBOperation(0x18, "RR", (*CPU).rotateRight)
}
