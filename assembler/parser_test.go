package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/casm/assembler"
	"github.com/Urethramancer/casm/isa"
)

// parseSrc lexes and parses, failing the test on lexical errors so parser
// tests only see parser diagnostics.
func parseSrc(t *testing.T, src string) ([]assembler.Line, assembler.ErrorList) {
	t.Helper()
	groups, errs := assembler.Tokenize(testSet(t), src)
	require.Empty(t, errs)
	return assembler.Parse(groups)
}

func TestParseInstruction(t *testing.T) {
	lines, errs := parseSrc(t, "MOV [0x10] A")
	require.Empty(t, errs)
	require.Len(t, lines, 1)

	line := lines[0]
	require.Equal(t, assembler.LineInstruction, line.Kind)
	require.Equal(t, "MOV", line.Mnemonic.Content)
	require.Len(t, line.Operands, 2)

	// each operand carries its syntactic kind
	require.Equal(t, isa.Mem, line.Operands[0].Kind)
	require.Equal(t, int64(16), line.Operands[0].Token.Value)
	// the memory reference's span covers both brackets
	require.Equal(t, assembler.NewSpan(0, 4, 10), line.Operands[0].Token.Span)
	require.Equal(t, isa.Register("A"), line.Operands[1].Kind)
}

func TestParseOperandKinds(t *testing.T) {
	lines, errs := parseSrc(t, "MOV 5 A\nJMP #loop\nloop: NOP")
	require.Empty(t, errs)
	require.Len(t, lines, 3)
	require.Equal(t, isa.Const, lines[0].Operands[0].Kind)
	require.Equal(t, isa.Const, lines[1].Operands[0].Kind)
	require.Empty(t, lines[2].Operands)
	require.Len(t, lines[2].Labels, 1)
}

func TestParseByteDeclaration(t *testing.T) {
	lines, errs := parseSrc(t, "byte 1 0x02 #end")
	require.Empty(t, errs)
	require.Len(t, lines, 1)
	require.Equal(t, assembler.LineByte, lines[0].Kind)
	require.Len(t, lines[0].Values, 3)
	require.Equal(t, assembler.TokenLabelRef, lines[0].Values[2].Kind)
}

func TestParseLabelOnlyLine(t *testing.T) {
	lines, errs := parseSrc(t, "start:")
	require.Empty(t, errs)
	require.Len(t, lines, 1)
	require.Equal(t, assembler.LineEmpty, lines[0].Kind)
	require.Equal(t, "start", lines[0].Labels[0].Content)
}

func TestParseUnexpectedLineBeginning(t *testing.T) {
	_, errs := parseSrc(t, "5 A")
	require.Len(t, errs, 1)
	require.Equal(t, assembler.ErrUnexpectedLineBeginning, errs[0].Kind)
}

func TestParseMemRefErrors(t *testing.T) {
	tests := []struct {
		name, src string
		kind      assembler.ErrorKind
	}{
		{"unclosed at end of line", "MOV [5", assembler.ErrEOF},
		{"nothing after bracket", "MOV [", assembler.ErrEOF},
		{"register inside brackets", "MOV [A]", assembler.ErrUnexpectedToken},
		{"missing closing bracket", "MOV [5 A", assembler.ErrUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseSrc(t, tt.src)
			require.Len(t, errs, 1)
			require.Equal(t, tt.kind, errs[0].Kind)
		})
	}
}

// One malformed line between two well-formed ones yields exactly one error
// and both good lines: the parser resynchronizes at the next line.
func TestParseRecovery(t *testing.T) {
	lines, errs := parseSrc(t, "NOP\nMOV [5\nHALT")
	require.Len(t, errs, 1)
	require.Equal(t, assembler.ErrEOF, errs[0].Kind)
	require.Equal(t, 1, errs[0].Span.Line)

	require.Len(t, lines, 2)
	require.Equal(t, "NOP", lines[0].Mnemonic.Content)
	require.Equal(t, "HALT", lines[1].Mnemonic.Content)
}

func TestParseLineSpanCoversWholeLine(t *testing.T) {
	lines, errs := parseSrc(t, "MOV 5 A")
	require.Empty(t, errs)
	require.Equal(t, assembler.NewSpan(0, 0, 7), lines[0].Span)
}
