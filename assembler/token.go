package assembler

// TokenKind tags a lexed token.
type TokenKind int

const (
	// TokenMnemonic is an instruction name.
	TokenMnemonic TokenKind = iota
	// TokenRegister is a register name.
	TokenRegister
	// TokenNumber is an integer literal.
	TokenNumber
	// TokenLabel is a label declaration ("name:").
	TokenLabel
	// TokenLabelRef is a label reference ("#name").
	TokenLabelRef
	// TokenByte is the byte directive keyword.
	TokenByte
	// TokenLBracket is '['.
	TokenLBracket
	// TokenRBracket is ']'.
	TokenRBracket
)

func (k TokenKind) String() string {
	switch k {
	case TokenMnemonic:
		return "mnemonic"
	case TokenRegister:
		return "register"
	case TokenNumber:
		return "number"
	case TokenLabel:
		return "label"
	case TokenLabelRef:
		return "label reference"
	case TokenByte:
		return "byte keyword"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	}
	return "?"
}

// Token is one lexed unit. Content holds the canonical text: upper case for
// mnemonics and registers, the bare name for labels and label references,
// the literal text for numbers. Number tokens also carry the parsed value.
type Token struct {
	Kind    TokenKind
	Content string
	Value   int64
	Span    Span
}

// Equal compares kind and content, ignoring spans and values.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Content == o.Content
}
