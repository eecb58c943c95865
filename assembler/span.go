package assembler

import "fmt"

// Span locates a run of characters on one source line. Start and End are
// 0-based character offsets into the line, half-open. Spans are carried by
// every token and diagnostic and never change once created.
type Span struct {
	Line  int
	Start int
	End   int
}

// NewSpan creates a span for line covering [start, end).
func NewSpan(line, start, end int) Span {
	return Span{Line: line, Start: start, End: end}
}

// Merge returns the span enclosing both s and o, on the later line.
func (s Span) Merge(o Span) Span {
	line := s.Line
	if o.Line > line {
		line = o.Line
	}
	return Span{Line: line, Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// String renders the span 1-based, the way diagnostics show it.
func (s Span) String() string {
	if s.End-s.Start <= 1 {
		return fmt.Sprintf("%d:%d", s.Line+1, s.Start+1)
	}
	return fmt.Sprintf("%d:%d-%d", s.Line+1, s.Start+1, s.End)
}
