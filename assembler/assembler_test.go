package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/casm/assembler"
	"github.com/Urethramancer/casm/isa"
)

// testConfig is a small instruction set in the shape of the on-disk
// configuration format, enough to exercise every operand kind.
const testConfig = `
; test instruction set
NOP              , NOP       , 00000000
HALT             , HALT      , 11111111
MOV A B          , MOVAB     , 00000001
MOV B A          , MOVBA     , 00000010
MOV CONST A      , MOVCONSTA , 00000011
MOV MEM A        , MOVMEMA   , 00000100
MOV A MEM        , MOVAMEM   , 00000101
LDW MEM16 A      , LDWA      , 00000110
JMP CONST        , JMP       , 00001000
PUSH             , PUSHALL   , 00001001
PUSH A           , PUSHA     , 00001010
ADD A B          , ADDAB     , 00010000
CMP A FLAG       , CMPAF     , 00010001
`

func testSet(t *testing.T) *isa.Set {
	t.Helper()
	defs, err := isa.Parse(testConfig)
	require.NoError(t, err)
	set, err := isa.Build(defs)
	require.NoError(t, err)
	return set
}

// assemble runs the full pipeline and fails the test on any diagnostic.
func assemble(t *testing.T, src string) assembler.Program {
	t.Helper()
	prog, err := assembler.New(testSet(t)).Assemble(src)
	require.NoError(t, err, "failed to assemble:\n%s", src)
	return prog
}

func TestAssembleBasic(t *testing.T) {
	tests := []struct {
		name, src string
		want      []byte
	}{
		{"zero operand", "NOP", []byte{0x00}},
		{"register operands emit no bytes", "MOV A B", []byte{0x01}},
		{"constant operand", "MOV 42 A", []byte{0x03, 42}},
		{"memory operand", "MOV [0x10] A", []byte{0x04, 0x10}},
		{"wide memory operand", "LDW [0x1234] A", []byte{0x06, 0x12, 0x34}},
		{"byte declaration", "byte 1 2 3", []byte{1, 2, 3}},
		{"several lines", "MOV 1 A\nADD A B\nHALT", []byte{0x03, 1, 0x10, 0xFF}},
		{"lower case source", "mov 1 a", []byte{0x03, 1}},
		{"comments and blanks", "; header\n\nNOP ; trailing\n", []byte{0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, assembler.Program(tt.want), assemble(t, tt.src))
		})
	}
}

// A forward reference resolves to the byte offset after the referencing
// instruction's own encoding, never to zero.
func TestForwardReference(t *testing.T) {
	prog := assemble(t, "JMP #start\nstart: NOP")
	require.Equal(t, assembler.Program{0x08, 0x02, 0x00}, prog)
}

func TestBackwardReference(t *testing.T) {
	prog := assemble(t, "loop: NOP\nJMP #loop")
	require.Equal(t, assembler.Program{0x00, 0x08, 0x00}, prog)
}

func TestLabelOnlyLineBindsToNextByte(t *testing.T) {
	prog := assemble(t, "NOP\nend:\nbyte #end")
	require.Equal(t, assembler.Program{0x00, 0x01}, prog)
}

func TestWideLabelReference(t *testing.T) {
	// LDW encodes to three bytes, so far sits at offset 3, emitted as two
	// bytes, most significant first.
	prog := assemble(t, "LDW [#far] A\nfar: NOP")
	require.Equal(t, assembler.Program{0x06, 0x00, 0x03, 0x00}, prog)
}

func TestUnknownLabelSpan(t *testing.T) {
	_, err := assembler.New(testSet(t)).Assemble("JMP #nowhere")
	var list assembler.ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 1)
	require.Equal(t, assembler.ErrUnknownLabel, list[0].Kind)
	require.Equal(t, assembler.NewSpan(0, 4, 12), list[0].Span)
}

func TestDuplicateLabelRejected(t *testing.T) {
	_, err := assembler.New(testSet(t)).Assemble("here: NOP\nhere: HALT")
	var list assembler.ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 1)
	require.Equal(t, assembler.ErrDuplicateLabel, list[0].Kind)
	require.Equal(t, 1, list[0].Span.Line)
}

func TestIdempotence(t *testing.T) {
	src := "start: MOV 1 A\nJMP #start\nbyte 0xFF #start\nHALT"
	first := assemble(t, src)
	second := assemble(t, src)
	require.Equal(t, first, second)
}

func TestBitStringOutput(t *testing.T) {
	prog := assemble(t, "JMP #start\nstart: NOP")
	bits := prog.BitStrings()
	require.Equal(t, []string{"00001000", "00000010", "00000000"}, bits)
	for _, b := range bits {
		require.Len(t, b, 8)
	}
	require.Equal(t, "00001000\n00000010\n00000000\n", prog.Text())
}

func TestEmptySource(t *testing.T) {
	prog := assemble(t, "")
	require.Empty(t, prog)
	require.Equal(t, "", prog.Text())
}

// The pipeline stops at the first stage that reports anything, returning
// that stage's full error list.
func TestStageErrorsComeBackTogether(t *testing.T) {
	_, err := assembler.New(testSet(t)).Assemble("NOP @\nHALT $")
	var list assembler.ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 2)
	require.Equal(t, assembler.ErrUnknownToken, list[0].Kind)
	require.Equal(t, assembler.ErrUnknownToken, list[1].Kind)
}
