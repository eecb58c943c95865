package assembler

import (
	"fmt"
	"io"
	"strings"
)

// ErrorKind classifies a diagnostic.
type ErrorKind int

const (
	// ErrUnknownToken is an unrecognized character run.
	ErrUnknownToken ErrorKind = iota
	// ErrNumberParse is a digit sequence that does not fit its radix.
	ErrNumberParse
	// ErrLabelParse is a label declaration that does not begin its line.
	ErrLabelParse
	// ErrUnexpectedToken is a present-but-wrong-kind token.
	ErrUnexpectedToken
	// ErrUnexpectedLineBeginning is a line starting with a token that is
	// neither a label, a mnemonic nor the byte keyword.
	ErrUnexpectedLineBeginning
	// ErrEOF is a missing expected token at the end of a line.
	ErrEOF
	// ErrUnknownMnemonic is an instruction name absent from the automaton.
	ErrUnknownMnemonic
	// ErrInvalidOperand is an operand sequence with no automaton path.
	ErrInvalidOperand
	// ErrNumberOutOfRange is a value outside the applicable byte width.
	ErrNumberOutOfRange
	// ErrUnknownLabel is a reference to a label never declared.
	ErrUnknownLabel
	// ErrDuplicateLabel is a second declaration of the same label.
	ErrDuplicateLabel
)

// Error is a diagnostic anchored to a source span.
type Error struct {
	Kind ErrorKind
	Msg  string
	Span Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

func newError(kind ErrorKind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Span: span}
}

// ErrorList aggregates every diagnostic from one pass, so a user fixing one
// typo does not have to re-run to discover the next.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual diagnostics to errors.Is/As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Render writes each diagnostic with a 1-based location, the offending
// source line and a caret underline for the span. file may be empty.
func (l ErrorList) Render(w io.Writer, file, src string) {
	lines := strings.Split(src, "\n")
	prefix := ""
	if file != "" {
		prefix = file + ":"
	}
	for _, e := range l {
		fmt.Fprintf(w, "%s%s: error: %s\n", prefix, e.Span, e.Msg)
		if e.Span.Line >= len(lines) {
			continue
		}
		line := strings.TrimSuffix(lines[e.Span.Line], "\r")
		fmt.Fprintf(w, "\t%s\n", line)

		// Tabs in the snippet keep their width in the underline.
		var pad strings.Builder
		for i, r := range []rune(line) {
			if i >= e.Span.Start {
				break
			}
			if r == '\t' {
				pad.WriteByte('\t')
			} else {
				pad.WriteByte(' ')
			}
		}
		width := max(e.Span.End-e.Span.Start, 1)
		fmt.Fprintf(w, "\t%s%s\n", pad.String(), strings.Repeat("^", width))
	}
}
