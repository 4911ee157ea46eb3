package cpu

import "fmt"

// testBit tests the given bit of the value.
//
//	BIT b, n
//	b = bit number
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if the bit is zero.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(bit, value uint8) {
	c.setFlags(value&(1<<bit) == 0, false, true, c.isFlagSet(FlagCarry))
}

func init() {
	for bit := uint8(0); bit < 8; bit++ {
		for srcIdx := uint8(0); srcIdx < 8; srcIdx++ {
			offset := bit<<3 + srcIdx
			bitName := fmt.Sprintf("BIT %d, %s", bit, registerName[srcIdx])
			resName := fmt.Sprintf("RES %d, %s", bit, registerName[srcIdx])
			setName := fmt.Sprintf("SET %d, %s", bit, registerName[srcIdx])
			mask := uint8(1) << bit
			if srcIdx == 6 {
				b := bit
				DefineCBInstruction(0x40+offset, bitName, func(c *CPU, operands []byte) {
					c.testBit(b, c.readByte(c.HL.Uint16()))
				}, Cycles(3))
				DefineCBInstruction(0x80+offset, resName, func(c *CPU, operands []byte) {
					c.writeByte(c.HL.Uint16(), c.readByte(c.HL.Uint16())&^mask)
				}, Cycles(4))
				DefineCBInstruction(0xC0+offset, setName, func(c *CPU, operands []byte) {
					c.writeByte(c.HL.Uint16(), c.readByte(c.HL.Uint16())|mask)
				}, Cycles(4))
			} else {
				b, src := bit, srcIdx
				DefineCBInstruction(0x40+offset, bitName, func(c *CPU, operands []byte) {
					c.testBit(b, *c.registerByIndex(src))
				})
				DefineCBInstruction(0x80+offset, resName, func(c *CPU, operands []byte) {
					*c.registerByIndex(src) &^= mask
				})
				DefineCBInstruction(0xC0+offset, setName, func(c *CPU, operands []byte) {
					*c.registerByIndex(src) |= mask
				})
			}
		}
	}
}
