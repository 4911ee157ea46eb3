package cpu

import "fmt"

// Instruction is one entry of the opcode tables: a mnemonic, the
// total byte length (opcode plus operands) and the base cost in
// M-cycles. Conditional instructions carry their not-taken cost;
// the taken branch adds its extra cycles at execution time.
type Instruction struct {
	name   string
	fn     func(c *CPU, operands []byte)
	length uint8
	cycles uint8
}

// Name returns the instruction's mnemonic.
func (i Instruction) Name() string { return i.name }

// Length returns the instruction's byte length, operands included.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the instruction's base cost in M-cycles.
func (i Instruction) Cycles() uint8 { return i.cycles }

// InstructionSet is the base opcode page. InstructionSetCB is the
// 0xCB-prefixed page of rotate/shift/bit instructions; its cycle
// counts include the prefix fetch. Both tables are filled during
// package initialisation, indexed directly by the opcode byte.
var (
	InstructionSet   [256]Instruction
	InstructionSetCB [256]Instruction
)

// InstructionOpt configures an instruction definition.
type InstructionOpt func(*Instruction)

// Length sets the instruction's byte length (default 1).
func Length(n uint8) InstructionOpt {
	return func(i *Instruction) { i.length = n }
}

// Cycles sets the instruction's base cost in M-cycles (default 1).
func Cycles(n uint8) InstructionOpt {
	return func(i *Instruction) { i.cycles = n }
}

// DefineInstruction registers an instruction on the base page.
func DefineInstruction(opcode uint8, name string, fn func(c *CPU, operands []byte), opts ...InstructionOpt) {
	i := Instruction{
		name:   name,
		fn:     fn,
		length: 1,
		cycles: 1,
	}
	for _, opt := range opts {
		opt(&i)
	}
	InstructionSet[opcode] = i
}

// DefineCBInstruction registers an instruction on the 0xCB page.
// Length is fixed: the page has no operand bytes.
func DefineCBInstruction(opcode uint8, name string, fn func(c *CPU, operands []byte), opts ...InstructionOpt) {
	i := Instruction{
		name:   name,
		fn:     fn,
		length: 1,
		cycles: 2,
	}
	for _, opt := range opts {
		opt(&i)
	}
	InstructionSetCB[opcode] = i
}

// registerName is the conventional mnemonic ordering of the opcode
// tables; index 6 is the memory operand (HL).
var registerName = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerByIndex returns a pointer to the register encoded by the
// low 3 bits of an opcode. Index 6, the (HL) memory operand, has no
// register; callers handle it separately.
func (c *CPU) registerByIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("no register at index %d", index))
}

func init() {
	// the unused opcodes; executing one hangs real hardware
	for _, opcode := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		op := opcode
		DefineInstruction(op, fmt.Sprintf("ILLEGAL(%02X)", op), func(c *CPU, operands []byte) {
			c.log.Errorf("cpu: illegal opcode %#02x at %#04x", op, c.PC)
		})
	}
}
