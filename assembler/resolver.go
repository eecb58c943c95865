package assembler

// Resolver binds label declarations to byte offsets and substitutes label
// references. Two explicit passes: instruction widths vary, so no address
// is known until the whole stream has been measured. Both passes walk the
// units in stable source order.
type Resolver struct {
	labels map[string]int
}

// NewResolver creates a resolver with an empty label table.
func NewResolver() *Resolver {
	return &Resolver{labels: make(map[string]int)}
}

// Resolve runs both passes over the checked lines. Resolution errors are
// aggregated; on any error the program is nil.
func (r *Resolver) Resolve(lines []CheckedLine) (Program, ErrorList) {
	var errs ErrorList

	// Pass 1: addressing. Labels bind to the running byte offset; every
	// unit advances it by its encoded width.
	offset := 0
	for _, cl := range lines {
		for _, label := range cl.Line.Labels {
			if _, dup := r.labels[label.Content]; dup {
				errs = append(errs, newError(ErrDuplicateLabel, label.Span,
					"label %q is already defined", label.Content))
				continue
			}
			r.labels[label.Content] = offset
		}
		for _, u := range cl.Units {
			offset += u.Width
		}
	}

	// Pass 2: substitution.
	var prog Program
	for _, cl := range lines {
		for _, u := range cl.Units {
			if u.Kind == UnresolvedValue {
				prog = append(prog, u.Value)
				continue
			}
			addr, ok := r.labels[u.Label]
			if !ok {
				errs = append(errs, newError(ErrUnknownLabel, u.Span, "unknown label %q", u.Label))
				continue
			}
			if addr >= 1<<(8*u.Width) {
				errs = append(errs, newError(ErrNumberOutOfRange, u.Span,
					"label %q resolves to address %d, which does not fit in %d bytes", u.Label, addr, u.Width))
				continue
			}
			for i := u.Width - 1; i >= 0; i-- {
				prog = append(prog, byte(addr>>(8*i)))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return prog, nil
}
