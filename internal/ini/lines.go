package ini

// Lines is an ordered, line-indexed text buffer.
type Lines []string

// Splice replaces the half-open range [start, end) with insert in a single
// step. Splice(len(l), len(l), x...) appends.
func (l *Lines) Splice(start, end int, insert ...string) {
	old := *l
	out := make(Lines, 0, len(old)-(end-start)+len(insert))
	out = append(out, old[:start]...)
	out = append(out, insert...)
	out = append(out, old[end:]...)
	*l = out
}

// Range is a half-open span of line indexes. Start is the header line and
// End is the first line after the section body.
type Range struct {
	Start int
	End   int
}

// Body returns the index of the first body line.
func (r Range) Body() int { return r.Start + 1 }
