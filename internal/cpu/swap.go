package cpu

// swap exchanges the upper and lower nibbles of the value.
//
//	SWAP n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	swapped := value<<4 | value>>4
	c.setFlags(swapped == 0, false, false, false)
	return swapped
}

func init() {
	defineCBOperation(0x30, "SWAP", (*CPU).swap)
}
