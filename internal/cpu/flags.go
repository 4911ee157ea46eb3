package cpu

// The flags register F packs four condition flags into its top
// nibble; the low nibble always reads zero.
const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero = uint8(1 << 7)
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract = uint8(1 << 6)
	// FlagHalfCarry is set when an operation carried out of bit 3
	// (or borrowed into it).
	FlagHalfCarry = uint8(1 << 5)
	// FlagCarry is set when an operation carried out of bit 7 (or
	// borrowed into it).
	FlagCarry = uint8(1 << 4)
)

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag uint8) bool {
	return c.F&flag != 0
}

// setFlag sets the given flag.
func (c *CPU) setFlag(flag uint8) {
	c.F |= flag
}

// clearFlag clears the given flag.
func (c *CPU) clearFlag(flag uint8) {
	c.F &^= flag
}

// setFlags rewrites all four flags at once, keeping the low nibble
// of F zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	c.F = f
}
