package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is an anchor position on the document grid.
// Both Row and Col are 0-indexed; Col is a byte column within the row.
type Position struct {
	Row int
	Col int
}

// Pos creates a position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns the "row.col" representation.
func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Positions are ordered by row, then column.
func (p Position) Compare(other Position) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// PrevCol returns the position one column to the left, saturating at column 0.
func (p Position) PrevCol() Position {
	if p.Col <= 0 {
		return Position{Row: p.Row, Col: 0}
	}
	return Position{Row: p.Row, Col: p.Col - 1}
}

// NextCol returns the position one column to the right.
func (p Position) NextCol() Position {
	return Position{Row: p.Row, Col: p.Col + 1}
}

// WithCol returns the position on the same row at column col.
func (p Position) WithCol(col int) Position {
	return Position{Row: p.Row, Col: col}
}

func minPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

func maxPos(a, b Position) Position {
	if b.After(a) {
		return b
	}
	return a
}

// ParsePosition parses a "row.col" string.
func ParsePosition(s string) (Position, error) {
	row, col, ok := strings.Cut(s, ".")
	if !ok {
		return Position{}, fmt.Errorf("could not parse as position: %q", s)
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return Position{}, fmt.Errorf("could not parse row of %q: %w", s, err)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return Position{}, fmt.Errorf("could not parse column of %q: %w", s, err)
	}
	if r < 0 || c < 0 {
		return Position{}, fmt.Errorf("negative position %q", s)
	}
	return Position{Row: r, Col: c}, nil
}
