package assembler

import "github.com/Urethramancer/casm/isa"

// Parse turns line-grouped tokens into Lines. It never stops at the first
// error: a malformed line is dropped, its error recorded, and parsing
// resumes on the next line, so a single pass reports every bad line.
//
// Grammar, per line:
//
//	line        := label* (instruction | byte_decl)?
//	instruction := MNEMONIC operand*
//	operand     := REGISTER | NUMBER | LABELREF | '[' (NUMBER | LABELREF) ']'
//	byte_decl   := BYTE_KEYWORD (NUMBER | LABELREF)*
func Parse(groups [][]Token) ([]Line, ErrorList) {
	var lines []Line
	var errs ErrorList
	for _, toks := range groups {
		if len(toks) == 0 {
			continue
		}
		line, err := parseLine(toks)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	return lines, errs
}

func parseLine(toks []Token) (Line, *Error) {
	line := Line{Span: toks[0].Span}
	for _, t := range toks[1:] {
		line.Span = line.Span.Merge(t.Span)
	}

	i := 0
	for i < len(toks) && toks[i].Kind == TokenLabel {
		line.Labels = append(line.Labels, toks[i])
		i++
	}
	if i == len(toks) {
		line.Kind = LineEmpty
		return line, nil
	}

	switch toks[i].Kind {
	case TokenMnemonic:
		return parseInstruction(line, toks, i)
	case TokenByte:
		return parseByte(line, toks, i)
	default:
		t := toks[i]
		return Line{}, newError(ErrUnexpectedLineBeginning, t.Span,
			"a line must begin with a label, a mnemonic or the byte keyword, found %s %q", t.Kind, t.Content)
	}
}

func parseInstruction(line Line, toks []Token, i int) (Line, *Error) {
	line.Kind = LineInstruction
	line.Mnemonic = toks[i]
	i++
	for i < len(toks) {
		op, next, err := parseOperand(toks, i)
		if err != nil {
			return Line{}, err
		}
		line.Operands = append(line.Operands, op)
		i = next
	}
	return line, nil
}

// parseOperand consumes one operand starting at toks[i] and returns it with
// the index of the token after it. Each operand is tagged with its
// syntactic kind here so the checker need not re-derive it.
func parseOperand(toks []Token, i int) (Operand, int, *Error) {
	t := toks[i]
	switch t.Kind {
	case TokenRegister:
		return Operand{Kind: isa.Register(t.Content), Token: t}, i + 1, nil
	case TokenNumber, TokenLabelRef:
		return Operand{Kind: isa.Const, Token: t}, i + 1, nil
	case TokenLBracket:
		if i+1 >= len(toks) {
			return Operand{}, 0, newError(ErrEOF, t.Span, "expected a number or label reference after '['")
		}
		inner := toks[i+1]
		if inner.Kind != TokenNumber && inner.Kind != TokenLabelRef {
			return Operand{}, 0, newError(ErrUnexpectedToken, inner.Span,
				"expected a number or label reference inside a memory reference, found %s %q", inner.Kind, inner.Content)
		}
		if i+2 >= len(toks) {
			return Operand{}, 0, newError(ErrEOF, t.Span.Merge(inner.Span), "expected ']' to close the memory reference")
		}
		if toks[i+2].Kind != TokenRBracket {
			return Operand{}, 0, newError(ErrUnexpectedToken, toks[i+2].Span,
				"expected ']', found %s %q", toks[i+2].Kind, toks[i+2].Content)
		}
		// The memory reference keeps the inner token's content and value,
		// with a span covering both brackets.
		tok := inner
		tok.Span = t.Span.Merge(toks[i+2].Span)
		return Operand{Kind: isa.Mem, Token: tok}, i + 3, nil
	default:
		return Operand{}, 0, newError(ErrUnexpectedToken, t.Span,
			"expected an operand, found %s %q", t.Kind, t.Content)
	}
}

func parseByte(line Line, toks []Token, i int) (Line, *Error) {
	line.Kind = LineByte
	for _, t := range toks[i+1:] {
		if t.Kind != TokenNumber && t.Kind != TokenLabelRef {
			return Line{}, newError(ErrUnexpectedToken, t.Span,
				"expected a number or label reference in a byte declaration, found %s %q", t.Kind, t.Content)
		}
		line.Values = append(line.Values, t)
	}
	return line, nil
}
