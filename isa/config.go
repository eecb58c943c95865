package isa

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ParseError describes a malformed instruction-set description. Line is
// 1-based; 0 means the file could not be read at all.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("config line %d: %s", e.Line, e.Msg)
}

func parseErr(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ParseOperandKind maps a config operand-kind name to its OperandKind.
// MEM is an alias for MEM8. Any other all-letter name declares a register.
func ParseOperandKind(s string) (OperandKind, error) {
	switch strings.ToUpper(s) {
	case "CONST":
		return Const, nil
	case "MEM", "MEM8":
		return Mem8, nil
	case "MEM16":
		return Mem16, nil
	case "FLAG":
		return Flag, nil
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return OperandKind{}, fmt.Errorf("unknown operand kind %q", s)
		}
	}
	return Register(s), nil
}

// Parse reads instruction definitions from the textual configuration
// format, one record per line:
//
//	MNEMONIC KIND KIND ... , FULLNAME , BITSTRING
//
// Blank lines and lines starting with ';' are skipped. Configuration errors
// are fatal: the first bad record aborts, since no partial instruction set
// is usable.
func Parse(src string) ([]Instruction, error) {
	var defs []Instruction
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, parseErr(i+1, "expected 3 comma-separated fields, found %d", len(fields))
		}

		head := strings.Fields(fields[0])
		if len(head) == 0 {
			return nil, parseErr(i+1, "missing mnemonic")
		}

		def := Instruction{
			Mnemonic: strings.ToUpper(head[0]),
			Name:     strings.TrimSpace(fields[1]),
			Opcode:   strings.TrimSpace(fields[2]),
		}
		for _, arg := range head[1:] {
			kind, err := ParseOperandKind(arg)
			if err != nil {
				return nil, parseErr(i+1, "%v", err)
			}
			def.Operands = append(def.Operands, kind)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Load reads an instruction-set description from a file and builds the
// automaton from it.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("open config: %v", err)}
	}
	defs, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	return Build(defs)
}
