package selection

import (
	"slices"
)

// Span is a normalized selection descriptor: Start never comes after End.
// Both endpoints are inclusive. The zero value is the single cell at 0.0.
//
// A Span can only be obtained through Desc.Sort, NewSpan or the geometric
// operations below, so every Span in circulation is normalized.
type Span struct {
	start Position
	end   Position
}

// NewSpan creates a normalized span from two endpoints in any order.
func NewSpan(a, b Position) Span {
	return Desc{Left: a, Right: b}.Sort()
}

// RowRange creates a span covering columns [fromCol, toCol] of row.
func RowRange(row, fromCol, toCol int) Span {
	return NewSpan(Pos(row, fromCol), Pos(row, toCol))
}

// Start returns the first position of the span.
func (s Span) Start() Position { return s.start }

// End returns the last position of the span.
func (s Span) End() Position { return s.end }

// Desc returns the span as a forward descriptor.
func (s Span) Desc() Desc {
	return Desc{Left: s.start, Right: s.end}
}

// String returns the "row.col,row.col" representation.
func (s Span) String() string {
	return s.Desc().String()
}

// RowSpan returns the inclusive number of rows touched. Minimum 1.
func (s Span) RowSpan() int {
	return s.end.Row - s.start.Row + 1
}

// Compare orders spans by start, then end.
func (s Span) Compare(other Span) int {
	if c := s.start.Compare(other.start); c != 0 {
		return c
	}
	return s.end.Compare(other.end)
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return !other.start.Before(s.start) && !other.end.After(s.end)
}

// ContainsPos reports whether p lies within s.
func (s Span) ContainsPos(p Position) bool {
	return !p.Before(s.start) && !p.After(s.end)
}

// Intersect returns the overlap of s and other, if any.
func (s Span) Intersect(other Span) (Span, bool) {
	a, b := s, other
	if b.Compare(a) < 0 {
		a, b = b, a
	}

	switch {
	case b.Contains(a):
		return a, true
	case a.Contains(b):
		return b, true
	case b.ContainsPos(a.end), a.ContainsPos(b.start):
		// With a <= b, any remaining overlap runs from b's start to a's end.
		return Span{start: b.start, end: a.end}, true
	}
	return Span{}, false
}

// PartialUnion returns the union of s and other when they overlap or are
// column-adjacent on the same row (a.End.Col+1 == b.Start.Col).
//
// Adjacency knows nothing about line lengths: the last column of one row and
// column 0 of the next are not joined.
func (s Span) PartialUnion(other Span) (Span, bool) {
	a, b := s, other
	if b.Compare(a) < 0 {
		a, b = b, a
	}

	overlap := a.ContainsPos(b.start) || b.ContainsPos(a.end)
	adjacent := a.end.Row == b.start.Row && a.end.Col+1 == b.start.Col
	if !overlap && !adjacent {
		return Span{}, false
	}
	return s.BoundingSelection(other), true
}

// Subtract removes other from s and returns what remains: zero, one or two
// spans. The cases are checked in this order:
//
//  1. other covers both endpoints of s: nothing remains.
//  2. other lies strictly inside s: the pieces before and after it.
//  3. other covers the start of s: the piece after other.
//  4. other covers the end of s: the piece before other.
//  5. no overlap: s unchanged.
func (s Span) Subtract(other Span) []Span {
	startIn := other.ContainsPos(s.start)
	endIn := other.ContainsPos(s.end)

	switch {
	case startIn && endIn:
		return nil
	case !startIn && !endIn && s.Contains(other):
		return []Span{
			{start: s.start, end: other.start.PrevCol()},
			{start: other.end.NextCol(), end: s.end},
		}
	case startIn:
		return []Span{{start: other.end.NextCol(), end: s.end}}
	case endIn:
		return []Span{{start: s.start, end: other.start.PrevCol()}}
	}
	return []Span{s}
}

// BoundingSelection returns the smallest span enclosing s and other.
func (s Span) BoundingSelection(other Span) Span {
	return Span{
		start: minPos(s.start, other.start),
		end:   maxPos(s.end, other.end),
	}
}

// SortSpans sorts spans in document order, in place.
func SortSpans(spans []Span) {
	slices.SortFunc(spans, Span.Compare)
}

// Bounding folds BoundingSelection over spans.
// It returns false for an empty slice.
func Bounding(spans []Span) (Span, bool) {
	if len(spans) == 0 {
		return Span{}, false
	}
	acc := spans[0]
	for _, s := range spans[1:] {
		acc = acc.BoundingSelection(s)
	}
	return acc, true
}
