package assembler

import "github.com/Urethramancer/casm/isa"

// UnresolvedKind tags an encoded unit.
type UnresolvedKind int

const (
	// UnresolvedValue is an already-known byte.
	UnresolvedValue UnresolvedKind = iota
	// UnresolvedLabelRef is a placeholder for a label address.
	UnresolvedLabelRef
)

// Unresolved is one encoded unit. Value units are always one byte wide;
// label references occupy Width bytes once resolved, most significant
// byte first.
type Unresolved struct {
	Kind  UnresolvedKind
	Value byte
	Label string
	Width int
	Span  Span
}

// CheckedLine pairs a parsed line with its encoded units. Label existence
// is not checked here; references stay unresolved until the resolver has
// measured the whole stream.
type CheckedLine struct {
	Line  Line
	Units []Unresolved
}

// Checker encodes parsed lines against the instruction-set automaton.
type Checker struct {
	set *isa.Set
}

// NewChecker creates a checker for the given instruction set.
func NewChecker(set *isa.Set) *Checker {
	return &Checker{set: set}
}

// Check encodes every line, collecting the semantic errors of all lines in
// one pass. A line that fails is dropped; the remaining lines are only
// meaningful when no errors came back.
func (c *Checker) Check(lines []Line) ([]CheckedLine, ErrorList) {
	var out []CheckedLine
	var errs ErrorList
	for _, line := range lines {
		units, err := c.checkLine(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, CheckedLine{Line: line, Units: units})
	}
	return out, errs
}

func (c *Checker) checkLine(line Line) ([]Unresolved, *Error) {
	switch line.Kind {
	case LineInstruction:
		return c.checkInstruction(line)
	case LineByte:
		return checkByte(line)
	default:
		return nil, nil
	}
}

// checkInstruction walks the automaton from the mnemonic's root node, one
// operand-kind edge per operand, then follows the terminal edge to the
// opcode. Operand values are encoded along the way.
func (c *Checker) checkInstruction(line Line) ([]Unresolved, *Error) {
	node, ok := c.set.Root(line.Mnemonic.Content)
	if !ok {
		return nil, newError(ErrUnknownMnemonic, line.Mnemonic.Span, "unknown mnemonic %q", line.Mnemonic.Content)
	}

	var operands []Unresolved
	for _, op := range line.Operands {
		next, kind, ok := transition(node, op.Kind)
		if !ok {
			return nil, newError(ErrInvalidOperand, op.Token.Span,
				"invalid operand %q for %s", op.Token.Content, line.Mnemonic.Content)
		}
		node = next
		units, err := encodeOperand(kind, op.Token)
		if err != nil {
			return nil, err
		}
		operands = append(operands, units...)
	}

	opcode, ok := node.Opcode()
	if !ok {
		return nil, newError(ErrInvalidOperand, line.Span,
			"incomplete operand sequence for %s", line.Mnemonic.Content)
	}
	return append(opcodeUnits(opcode, line.Mnemonic.Span), operands...), nil
}

// transition follows the automaton edge for an operand's syntactic kind.
// A bare constant may satisfy a CONST or FLAG edge and a memory reference a
// MEM8 or MEM16 edge; the narrower kind wins when both exist.
func transition(node *isa.Node, kind isa.OperandKind) (*isa.Node, isa.OperandKind, bool) {
	for _, k := range candidates(kind) {
		if next, ok := node.Next(k); ok {
			return next, k, true
		}
	}
	return nil, kind, false
}

func candidates(kind isa.OperandKind) []isa.OperandKind {
	switch kind.Class {
	case isa.ClassConst:
		return []isa.OperandKind{isa.Const, isa.Flag}
	case isa.ClassMem8, isa.ClassMem16:
		return []isa.OperandKind{isa.Mem8, isa.Mem16}
	default:
		return []isa.OperandKind{kind}
	}
}

// encodeOperand turns one operand into its trailing bytes. Registers
// contribute none: their identity is already encoded by the automaton path
// that selected the opcode.
func encodeOperand(kind isa.OperandKind, tok Token) ([]Unresolved, *Error) {
	width := kind.Width()
	if width == 0 {
		return nil, nil
	}
	if tok.Kind == TokenLabelRef {
		return []Unresolved{{Kind: UnresolvedLabelRef, Label: tok.Content, Width: width, Span: tok.Span}}, nil
	}
	return encodeNumber(tok, width)
}

// encodeNumber range-checks a literal and splits it into bytes, most
// significant first.
func encodeNumber(tok Token, width int) ([]Unresolved, *Error) {
	lo, hi := int64(-128), int64(255)
	if width == 2 {
		lo, hi = -32768, 65535
	}
	if tok.Value < lo || tok.Value > hi {
		return nil, newError(ErrNumberOutOfRange, tok.Span,
			"number should be in range [%d, %d], instead found %d", lo, hi, tok.Value)
	}

	units := make([]Unresolved, width)
	u := uint64(tok.Value)
	for i := width - 1; i >= 0; i-- {
		units[i] = Unresolved{Kind: UnresolvedValue, Value: byte(u), Width: 1, Span: tok.Span}
		u >>= 8
	}
	return units, nil
}

// opcodeUnits turns a validated opcode bit-string into value units, one per
// eight bits, most significant byte first.
func opcodeUnits(opcode string, span Span) []Unresolved {
	units := make([]Unresolved, 0, len(opcode)/8)
	for i := 0; i+8 <= len(opcode); i += 8 {
		var b byte
		for _, c := range opcode[i : i+8] {
			b <<= 1
			if c == '1' {
				b |= 1
			}
		}
		units = append(units, Unresolved{Kind: UnresolvedValue, Value: b, Width: 1, Span: span})
	}
	return units
}

// checkByte encodes a raw byte declaration. This is a data-emission escape
// hatch and never consults the automaton.
func checkByte(line Line) ([]Unresolved, *Error) {
	var units []Unresolved
	for _, tok := range line.Values {
		if tok.Kind == TokenLabelRef {
			units = append(units, Unresolved{Kind: UnresolvedLabelRef, Label: tok.Content, Width: 1, Span: tok.Span})
			continue
		}
		u, err := encodeNumber(tok, 1)
		if err != nil {
			return nil, err
		}
		units = append(units, u...)
	}
	return units, nil
}
