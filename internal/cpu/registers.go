package cpu

// Register is an 8-bit hardware register.
type Register = uint8

// RegisterPair combines two 8-bit registers into one 16-bit register.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the combined 16-bit value.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the pair from a 16-bit value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers are the eight 8-bit registers of the SM83. A doubles as
// the accumulator and F as the flags register; the pairs AF, BC, DE
// and HL view them as 16-bit registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

func (r *Registers) init() {
	r.AF = &RegisterPair{High: &r.A, Low: &r.F}
	r.BC = &RegisterPair{High: &r.B, Low: &r.C}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L}
}
