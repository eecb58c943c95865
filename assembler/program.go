package assembler

import (
	"fmt"
	"strings"
)

// Program is the fully resolved machine code, one entry per output byte.
type Program []byte

// BitStrings renders the program as bit-strings, exactly eight '0'/'1'
// characters per byte, most significant bit first.
func (p Program) BitStrings() []string {
	out := make([]string, len(p))
	for i, b := range p {
		out[i] = fmt.Sprintf("%08b", b)
	}
	return out
}

// Text renders the program one bit-string per line, with a trailing
// newline when the program is not empty.
func (p Program) Text() string {
	if len(p) == 0 {
		return ""
	}
	return strings.Join(p.BitStrings(), "\n") + "\n"
}
