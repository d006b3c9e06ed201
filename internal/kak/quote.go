package kak

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/dshills/selkit/internal/engine/selection"
)

// Escape doubles single quotes so s can be placed inside '...'.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Quote wraps s in single quotes.
func Quote(s string) string {
	return "'" + Escape(s) + "'"
}

// QuoteAll quotes each value and joins them with spaces.
func QuoteAll(values []string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Quote(v))
	}
	return b.String()
}

// SplitResponse splits a response written with -quoting shell.
func SplitResponse(s string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(strings.TrimRight(s, "\n"))
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return words, nil
}

// ParseDesc parses a 1-based "line.column,line.column" descriptor into the
// 0-based model.
func ParseDesc(s string) (selection.Desc, error) {
	d, err := selection.ParseDesc(s)
	if err != nil {
		return selection.Desc{}, err
	}
	if d.Left.Row == 0 || d.Left.Col == 0 || d.Right.Row == 0 || d.Right.Col == 0 {
		return selection.Desc{}, fmt.Errorf("descriptor %q is not 1-based", s)
	}
	return selection.NewDesc(fromEditor(d.Left), fromEditor(d.Right)), nil
}

// FormatDesc formats a descriptor as the editor's 1-based text.
func FormatDesc(d selection.Desc) string {
	return toEditor(d.Left).String() + "," + toEditor(d.Right).String()
}

func fromEditor(p selection.Position) selection.Position {
	return selection.Pos(p.Row-1, p.Col-1)
}

func toEditor(p selection.Position) selection.Position {
	return selection.Pos(p.Row+1, p.Col+1)
}

// RegisterExpansion returns the %reg{...} expansion for r.
func RegisterExpansion(r selection.Register) string {
	return "%reg{" + r.Name() + "}"
}
