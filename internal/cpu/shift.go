package cpu

// shiftLeftArithmetic shifts the value left, bit 0 becoming zero.
//
//	SLA n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(value uint8) uint8 {
	shifted := value << 1
	c.setFlags(shifted == 0, false, false, value&0x80 != 0)
	return shifted
}

// shiftRightArithmetic shifts the value right, bit 7 keeping its
// value.
//
//	SRA n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(value uint8) uint8 {
	shifted := value>>1 | value&0x80
	c.setFlags(shifted == 0, false, false, value&0x01 != 0)
	return shifted
}

// shiftRightLogical shifts the value right, bit 7 becoming zero.
//
//	SRL n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	shifted := value >> 1
	c.setFlags(shifted == 0, false, false, value&0x01 != 0)
	return shifted
}

func init() {
	defineCBOperation(0x20, "SLA", (*CPU).shiftLeftArithmetic)
	defineCBOperation(0x28, "SRA", (*CPU).shiftRightArithmetic)
	defineCBOperation(0x38, "SRL", (*CPU).shiftRightLogical)
}
