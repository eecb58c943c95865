// Package assembler translates line-oriented assembly for a configurable
// instruction set into machine code. The pipeline is strictly sequential:
// lexer, parser, checker/encoder, resolver; each stage fully consumes its
// predecessor's output, and each stage aggregates its own diagnostics so a
// single run reports every error it can find.
package assembler

import "github.com/Urethramancer/casm/isa"

// Assembler holds the state for the assembly process.
type Assembler struct {
	set *isa.Set
}

// New creates a new Assembler for the given instruction set.
func New(set *isa.Set) *Assembler {
	return &Assembler{set: set}
}

// Assemble translates assembly source into machine code. On failure the
// returned error is the ErrorList of the first stage that reported
// anything; later stages never run on bad input.
func (a *Assembler) Assemble(src string) (Program, error) {
	groups, errs := Tokenize(a.set, src)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	lines, errs := Parse(groups)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	checked, errs := NewChecker(a.set).Check(lines)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	prog, errs := NewResolver().Resolve(checked)
	return prog, errs.Err()
}
