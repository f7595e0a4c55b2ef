package loc

type Loc struct {
	// This is the 0-based index of this location from the start of the buffer, in bytes
	Start int
}

type Range struct {
	Loc Loc
	Len int
}

func (r Range) End() int {
	return r.Loc.Start + r.Len
}

// Span is a range of bytes in a Tokenizer's buffer. The start is inclusive,
// the end is exclusive.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Range converts the span into a Range anchored at its start.
func (s Span) Range() Range {
	return Range{Loc: Loc{Start: s.Start}, Len: s.Len()}
}
