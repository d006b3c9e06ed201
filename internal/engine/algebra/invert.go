package algebra

import (
	"github.com/dshills/selkit/internal/engine/selection"
)

// Invert returns the complement of sels within the document.
//
// docLines holds one span per document row. sels are grouped by their
// starting row and only subtracted from that row's line, so callers split
// multi-line selections into per-row pieces first.
func Invert(sels []selection.Span, docLines []selection.Span) []selection.Span {
	byRow := make(map[int][]selection.Span)
	for _, s := range sels {
		row := s.Start().Row
		byRow[row] = append(byRow[row], s)
	}

	var out []selection.Span
	for _, line := range docLines {
		subs, ok := byRow[line.Start().Row]
		if !ok {
			out = append(out, line)
			continue
		}
		out = append(out, SubtractAll(line, Consolidate(subs))...)
	}
	return out
}

// SubtractAll removes every span in subs from s. subs must be sorted.
//
// Left-hand pieces produced along the way are emitted immediately; the
// right-hand piece is carried forward as the remainder.
func SubtractAll(s selection.Span, subs []selection.Span) []selection.Span {
	var out []selection.Span
	rem := s
	for _, sub := range subs {
		pieces := rem.Subtract(sub)
		switch len(pieces) {
		case 0:
			return out
		case 1:
			rem = pieces[0]
		default:
			out = append(out, pieces[0])
			rem = pieces[1]
		}
	}
	return append(out, rem)
}

// Consolidate sorts spans and merges those that overlap or are adjacent on
// the same row.
func Consolidate(spans []selection.Span) []selection.Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]selection.Span(nil), spans...)
	selection.SortSpans(sorted)

	out := []selection.Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if merged, ok := last.PartialUnion(s); ok {
			*last = merged
			continue
		}
		out = append(out, s)
	}
	return out
}
