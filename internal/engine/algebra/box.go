package algebra

import (
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
)

// BoxOptions controls Box.
type BoxOptions struct {
	// SkipMissingRows drops rows absent from the line split instead of failing.
	// Splitting to line content omits blank lines, so this is set together
	// with excluding newlines.
	SkipMissingRows bool
}

// Box turns every selection into the rectangle spanned by its columns,
// one span per row, clipped to that row's line span.
//
// lines holds one whole-line span per row, as produced by splitting the
// selections into lines. Rows whose clipped rectangle is empty are dropped.
// Output follows the order of sels, then row order.
func Box(sels []selection.Span, lines []selection.Span, opts BoxOptions) ([]selection.Span, error) {
	if len(sels) == 0 {
		return nil, failure.Usage("box", "selection is empty")
	}

	byRow := make(map[int]selection.Span, len(lines))
	for _, l := range lines {
		if _, ok := byRow[l.Start().Row]; !ok {
			byRow[l.Start().Row] = l
		}
	}

	var out []selection.Span
	for _, s := range sels {
		left, right := s.Start().Col, s.End().Col
		if left > right {
			left, right = right, left
		}

		for row := s.Start().Row; row <= s.End().Row; row++ {
			line, ok := byRow[row]
			if !ok {
				if opts.SkipMissingRows {
					continue
				}
				return nil, failure.Consistency("box", "row %d not found in line split", row).
					WithDetail("selection=%v lines=%d", s, len(lines))
			}
			if piece, ok := line.Intersect(selection.RowRange(row, left, right)); ok {
				out = append(out, piece)
			}
		}
	}
	return out, nil
}

// Envelope collapses sels to their bounding selection.
func Envelope(sels []selection.Span) (selection.Span, error) {
	env, ok := selection.Bounding(sels)
	if !ok {
		return selection.Span{}, failure.Usage("box", "selection is empty")
	}
	return env, nil
}
