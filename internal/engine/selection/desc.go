package selection

import (
	"fmt"
	"strings"
)

// Desc is a selection descriptor as reported by the editor.
// Either endpoint may be the anchor; Left is not guaranteed to precede Right.
// Desc is an immutable value type.
type Desc struct {
	Left  Position
	Right Position
}

// NewDesc creates a descriptor from two endpoints in the given order.
func NewDesc(left, right Position) Desc {
	return Desc{Left: left, Right: right}
}

// PointDesc creates the degenerate descriptor (p, p).
func PointDesc(p Position) Desc {
	return Desc{Left: p, Right: p}
}

// Sort returns the normalized form of the descriptor.
func (d Desc) Sort() Span {
	if d.Right.Before(d.Left) {
		return Span{start: d.Right, end: d.Left}
	}
	return Span{start: d.Left, end: d.Right}
}

// Reverse swaps the endpoints.
func (d Desc) Reverse() Desc {
	return Desc{Left: d.Right, Right: d.Left}
}

// IsForward returns true if Left does not come after Right.
func (d Desc) IsForward() bool {
	return !d.Right.Before(d.Left)
}

// RowSpan returns the number of rows the selection touches.
func (d Desc) RowSpan() int {
	return d.Sort().RowSpan()
}

// Contains reports whether other lies within d, independent of direction.
func (d Desc) Contains(other Desc) bool {
	return d.Sort().Contains(other.Sort())
}

// ContainsPos reports whether p lies within d.
func (d Desc) ContainsPos(p Position) bool {
	return d.Sort().ContainsPos(p)
}

// Intersect returns the overlap of d and other.
func (d Desc) Intersect(other Desc) (Span, bool) {
	return d.Sort().Intersect(other.Sort())
}

// PartialUnion returns the union of d and other if they overlap or touch.
func (d Desc) PartialUnion(other Desc) (Span, bool) {
	return d.Sort().PartialUnion(other.Sort())
}

// Subtract removes other from d.
func (d Desc) Subtract(other Desc) []Span {
	return d.Sort().Subtract(other.Sort())
}

// BoundingSelection returns the envelope of d and other.
func (d Desc) BoundingSelection(other Desc) Span {
	return d.Sort().BoundingSelection(other.Sort())
}

// Compare orders raw descriptors by Left, then Right.
// No normalization is applied.
func (d Desc) Compare(other Desc) int {
	if c := d.Left.Compare(other.Left); c != 0 {
		return c
	}
	return d.Right.Compare(other.Right)
}

// String returns the "row.col,row.col" representation.
func (d Desc) String() string {
	return d.Left.String() + "," + d.Right.String()
}

// ParseDesc parses a "row.col,row.col" string.
func ParseDesc(s string) (Desc, error) {
	left, right, ok := strings.Cut(s, ",")
	if !ok {
		return Desc{}, fmt.Errorf("could not parse as selection descriptor: %q", s)
	}
	l, err := ParsePosition(left)
	if err != nil {
		return Desc{}, err
	}
	r, err := ParsePosition(right)
	if err != nil {
		return Desc{}, err
	}
	return Desc{Left: l, Right: r}, nil
}

// Spans normalizes every descriptor, keeping the input order.
func Spans(descs []Desc) []Span {
	out := make([]Span, len(descs))
	for i, d := range descs {
		out[i] = d.Sort()
	}
	return out
}

// Descs converts spans back to descriptors.
func Descs(spans []Span) []Desc {
	out := make([]Desc, len(spans))
	for i, s := range spans {
		out[i] = s.Desc()
	}
	return out
}
