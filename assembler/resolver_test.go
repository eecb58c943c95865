package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/casm/assembler"
)

// resolve runs the first three stages strictly, then resolves.
func resolve(t *testing.T, src string) (assembler.Program, assembler.ErrorList) {
	t.Helper()
	checked, errs := check(t, src)
	require.Empty(t, errs)
	return assembler.NewResolver().Resolve(checked)
}

func TestResolveForwardAndBackward(t *testing.T) {
	prog, errs := resolve(t, "JMP #end\nmid: NOP\nJMP #mid\nend: HALT")
	require.Empty(t, errs)
	// JMP=2 bytes, NOP=1, JMP=2, so mid=2 and end=5.
	require.Equal(t, assembler.Program{0x08, 0x05, 0x00, 0x08, 0x02, 0xFF}, prog)
}

func TestResolveByteDeclarationRefs(t *testing.T) {
	prog, errs := resolve(t, "byte #end 7\nend: NOP")
	require.Empty(t, errs)
	require.Equal(t, assembler.Program{0x02, 0x07, 0x00}, prog)
}

func TestResolveUnknownLabel(t *testing.T) {
	prog, errs := resolve(t, "JMP #nowhere")
	require.Nil(t, prog)
	require.Len(t, errs, 1)
	require.Equal(t, assembler.ErrUnknownLabel, errs[0].Kind)
	require.Equal(t, assembler.NewSpan(0, 4, 12), errs[0].Span)
}

func TestResolveDuplicateLabel(t *testing.T) {
	prog, errs := resolve(t, "a: NOP\na: NOP")
	require.Nil(t, prog)
	require.Len(t, errs, 1)
	require.Equal(t, assembler.ErrDuplicateLabel, errs[0].Kind)
}

// Resolution errors aggregate like the earlier stages.
func TestResolveAggregates(t *testing.T) {
	_, errs := resolve(t, "JMP #a\nJMP #b")
	require.Len(t, errs, 2)
}

func TestResolveWideAddress(t *testing.T) {
	prog, errs := resolve(t, "LDW [#far] A\nfar: NOP")
	require.Empty(t, errs)
	require.Equal(t, assembler.Program{0x06, 0x00, 0x03, 0x00}, prog)
}

// A label whose address does not fit the reference's width is an error,
// not a silent truncation.
func TestResolveAddressOverflow(t *testing.T) {
	src := "JMP #end\n"
	for i := 0; i < 255; i++ {
		src += "NOP\n"
	}
	src += "end: HALT"
	// end sits at offset 2+255 = 257, which does not fit one byte.
	prog, errs := resolve(t, src)
	require.Nil(t, prog)
	require.Len(t, errs, 1)
	require.Equal(t, assembler.ErrNumberOutOfRange, errs[0].Kind)
}
