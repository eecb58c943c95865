package assembler

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Urethramancer/casm/isa"
)

// Lexer scans assembly source into spanned tokens. It keeps a cursor into
// the current line and classifies each character run by its first
// character; the mnemonic and register vocabularies come from the
// instruction set. Scanning continues past bad tokens so one pass reports
// every lexical error.
type Lexer struct {
	set   *isa.Set
	lines [][]rune
	line  int
	col   int
}

// NewLexer creates a lexer over src for the given instruction set.
func NewLexer(set *isa.Set, src string) *Lexer {
	l := &Lexer{set: set}
	for _, line := range strings.Split(src, "\n") {
		l.lines = append(l.lines, []rune(strings.TrimSuffix(line, "\r")))
	}
	return l
}

// Next returns the next token. The second result is false once input is
// exhausted. A non-nil error reports a bad token; the cursor has already
// moved past it and scanning may continue.
func (l *Lexer) Next() (Token, bool, *Error) {
	for l.line < len(l.lines) {
		line := l.lines[l.line]
		for l.col < len(line) && unicode.IsSpace(line[l.col]) {
			l.col++
		}
		// Comments run to the end of the line and are never emitted.
		if l.col >= len(line) || line[l.col] == ';' {
			l.line++
			l.col = 0
			continue
		}
		return l.scanToken(line)
	}
	return Token{}, false, nil
}

func (l *Lexer) scanToken(line []rune) (Token, bool, *Error) {
	start := l.col
	c := line[l.col]
	switch {
	case c == '[':
		l.col++
		return Token{Kind: TokenLBracket, Content: "[", Span: NewSpan(l.line, start, l.col)}, true, nil
	case c == ']':
		l.col++
		return Token{Kind: TokenRBracket, Content: "]", Span: NewSpan(l.line, start, l.col)}, true, nil
	case c == '#':
		l.col++
		name := l.takeWhile(line, isWordRune)
		span := NewSpan(l.line, start, l.col)
		if name == "" {
			return Token{}, true, newError(ErrUnknownToken, span, "unknown token %q", "#")
		}
		return Token{Kind: TokenLabelRef, Content: name, Span: span}, true, nil
	case c == '-' || isDigit(c):
		return l.scanNumber(line)
	case unicode.IsLetter(c) || c == '_':
		return l.scanWord(line)
	default:
		l.col++
		return Token{}, true, newError(ErrUnknownToken, NewSpan(l.line, start, l.col), "unknown token %q", string(c))
	}
}

// scanNumber consumes an optional sign and radix prefix, then a maximal run
// of hex digits, and parses the run with the implied radix. Consuming hex
// digits regardless of radix turns "0b12" into a NumberParseError instead
// of two tokens.
func (l *Lexer) scanNumber(line []rune) (Token, bool, *Error) {
	start := l.col
	neg := false
	if line[l.col] == '-' {
		neg = true
		l.col++
		if l.col >= len(line) || !isDigit(line[l.col]) {
			return Token{}, true, newError(ErrUnknownToken, NewSpan(l.line, start, l.col), "unknown token %q", "-")
		}
	}

	base := 10
	if line[l.col] == '0' && l.col+1 < len(line) {
		switch unicode.ToLower(line[l.col+1]) {
		case 'x':
			base = 16
			l.col += 2
		case 'b':
			base = 2
			l.col += 2
		case 'o':
			base = 8
			l.col += 2
		default:
			if isHexDigit(line[l.col+1]) {
				// A leading zero with more digits means octal.
				base = 8
				l.col++
			}
		}
	}

	digStart := l.col
	for l.col < len(line) && isHexDigit(line[l.col]) {
		l.col++
	}
	span := NewSpan(l.line, start, l.col)
	content := string(line[start:l.col])
	digits := string(line[digStart:l.col])
	if digits == "" {
		return Token{}, true, newError(ErrNumberParse, span, "missing digits after number prefix %q", content)
	}
	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return Token{}, true, newError(ErrNumberParse, span, "cannot parse %q as a base-%d number", content, base)
	}
	if neg {
		val = -val
	}
	return Token{Kind: TokenNumber, Content: content, Value: val, Span: span}, true, nil
}

// scanWord consumes a maximal identifier run and classifies it: a label
// declaration when followed by ':', otherwise the keyword table, then the
// mnemonic vocabulary, then the register vocabulary.
func (l *Lexer) scanWord(line []rune) (Token, bool, *Error) {
	start := l.col
	word := l.takeWhile(line, isWordRune)

	if l.col < len(line) && line[l.col] == ':' {
		l.col++
		span := NewSpan(l.line, start, l.col)
		if start != 0 {
			return Token{}, true, newError(ErrLabelParse, span, "label %q must begin its line", word)
		}
		return Token{Kind: TokenLabel, Content: word, Span: span}, true, nil
	}

	span := NewSpan(l.line, start, l.col)
	upper := strings.ToUpper(word)
	switch {
	case upper == "BYTE":
		return Token{Kind: TokenByte, Content: word, Span: span}, true, nil
	case l.set.IsMnemonic(upper):
		return Token{Kind: TokenMnemonic, Content: upper, Span: span}, true, nil
	case l.set.IsRegister(upper):
		return Token{Kind: TokenRegister, Content: upper, Span: span}, true, nil
	}
	return Token{}, true, newError(ErrUnknownToken, span, "unknown token %q", word)
}

func (l *Lexer) takeWhile(line []rune, pred func(rune) bool) string {
	start := l.col
	for l.col < len(line) && pred(line[l.col]) {
		l.col++
	}
	return string(line[start:l.col])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}

// Tokenize scans the whole source. Tokens come back grouped by source line,
// indexed by 0-based line number, together with every lexical error found.
func Tokenize(set *isa.Set, src string) ([][]Token, ErrorList) {
	l := NewLexer(set, src)
	groups := make([][]Token, len(l.lines))
	var errs ErrorList
	for {
		tok, ok, err := l.Next()
		if !ok {
			break
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		groups[tok.Span.Line] = append(groups[tok.Span.Line], tok)
	}
	return groups, errs
}
