// Package isa describes a configurable instruction set: the operand-kind
// vocabulary, the instruction records read from a configuration file, and
// the automaton the encoder walks to find opcodes.
package isa

import "strings"

// OperandClass is the coarse shape of an instruction operand.
type OperandClass int

const (
	// ClassRegister matches a named register.
	ClassRegister OperandClass = iota
	// ClassConst matches a bare immediate constant or label reference.
	ClassConst
	// ClassMem8 matches a bracketed 8-bit memory reference.
	ClassMem8
	// ClassMem16 matches a bracketed 16-bit memory reference.
	ClassMem16
	// ClassFlag matches an immediate constant coupled to the status flags.
	ClassFlag
)

// OperandKind is the syntactic and width shape of one operand. Register
// kinds carry the register name in canonical upper case.
type OperandKind struct {
	Class    OperandClass
	Register string
}

// Common kinds. Mem is what the parser tags a bare bracketed operand with
// before the encoder settles its width.
var (
	Const = OperandKind{Class: ClassConst}
	Mem   = OperandKind{Class: ClassMem8}
	Mem8  = OperandKind{Class: ClassMem8}
	Mem16 = OperandKind{Class: ClassMem16}
	Flag  = OperandKind{Class: ClassFlag}
)

// Register returns the operand kind for a named register.
func Register(name string) OperandKind {
	return OperandKind{Class: ClassRegister, Register: strings.ToUpper(name)}
}

func (k OperandKind) String() string {
	switch k.Class {
	case ClassRegister:
		return k.Register
	case ClassConst:
		return "CONST"
	case ClassMem8:
		return "MEM8"
	case ClassMem16:
		return "MEM16"
	case ClassFlag:
		return "FLAG"
	}
	return "?"
}

// Width returns the number of trailing bytes this operand contributes to
// the encoded instruction. Register identity rides in the opcode itself.
func (k OperandKind) Width() int {
	switch k.Class {
	case ClassRegister:
		return 0
	case ClassMem16:
		return 2
	default:
		return 1
	}
}

// Instruction is one instruction-set record: a mnemonic, the ordered
// operand kinds it takes, a descriptive full name and the opcode bit-string
// that encodes this exact variant.
type Instruction struct {
	Mnemonic string
	Operands []OperandKind
	Name     string
	Opcode   string
}
