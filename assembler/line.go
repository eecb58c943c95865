package assembler

import "github.com/Urethramancer/casm/isa"

// LineKind tags a parsed source line.
type LineKind int

const (
	// LineInstruction is a mnemonic with operands.
	LineInstruction LineKind = iota
	// LineByte is a raw byte declaration.
	LineByte
	// LineEmpty carries labels only; they bind to the next emitted byte.
	LineEmpty
)

// Operand pairs a parsed operand token with its syntactic kind. Bracketed
// operands are tagged isa.Mem; the checker settles their final width
// against the automaton.
type Operand struct {
	Kind  isa.OperandKind
	Token Token
}

// Line is one parsed source line. Ownership passes forward: the parser
// produces lines from tokens, the checker consumes them.
type Line struct {
	Kind     LineKind
	Labels   []Token
	Mnemonic Token
	Operands []Operand
	Values   []Token
	Span     Span
}
