// Package memsource implements source.Source over an in-memory document.
//
// It reproduces the editor's selection model closely enough to exercise
// commands end to end: byte columns, inclusive end positions that may cover a
// line's newline, descriptors rotated to the primary selection, and
// selections that never become empty (replacing a selection with "" leaves a
// single-cell selection on the next character).
package memsource

import (
	"slices"
	"strings"

	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// Message is a status message recorded by Message.
type Message struct {
	Primary string
	Debug   string
}

// Editor is an in-memory document with a selection set.
// Editor is not safe for concurrent use.
type Editor struct {
	text       string
	lineStarts []int

	sels    []selection.Desc // document order
	primary int              // index into sels

	registers map[selection.Register][]string
	scratch   map[string]string
	messages  []Message
}

// New creates an editor over text. Every line ends with a newline; one is
// appended if text lacks it. With no descs, the first character is selected.
func New(text string, descs ...selection.Desc) *Editor {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	e := &Editor{
		registers: make(map[selection.Register][]string),
		scratch:   make(map[string]string),
	}
	e.setText(text)
	if len(descs) == 0 {
		descs = []selection.Desc{selection.PointDesc(selection.Pos(0, 0))}
	}
	e.setSels(descs)
	return e
}

func (e *Editor) setText(text string) {
	e.text = text
	e.lineStarts = e.lineStarts[:0]
	e.lineStarts = append(e.lineStarts, 0)
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '\n' {
			e.lineStarts = append(e.lineStarts, i+1)
		}
	}
}

// setSels stores descs in document order; descs[0] becomes primary.
func (e *Editor) setSels(descs []selection.Desc) {
	first := descs[0]
	e.sels = slices.Clone(descs)
	slices.SortStableFunc(e.sels, func(a, b selection.Desc) int {
		return a.Sort().Compare(b.Sort())
	})
	e.primary = slices.Index(e.sels, first)
}

// Text returns the document.
func (e *Editor) Text() string { return e.text }

// LineCount returns the number of lines.
func (e *Editor) LineCount() int { return len(e.lineStarts) }

// SetPrimary makes the i-th selection in document order primary.
func (e *Editor) SetPrimary(i int) {
	if i >= 0 && i < len(e.sels) {
		e.primary = i
	}
}

// SetRegister stores values in a register.
func (e *Editor) SetRegister(r selection.Register, values ...string) {
	e.registers[r] = slices.Clone(values)
}

// Scratch returns the contents of a scratch buffer.
func (e *Editor) Scratch(name string) (string, bool) {
	s, ok := e.scratch[name]
	return s, ok
}

// Messages returns every message recorded so far.
func (e *Editor) Messages() []Message {
	return slices.Clone(e.messages)
}

// CurrentSpans returns the current selections in document order.
func (e *Editor) CurrentSpans() []selection.Span {
	return selection.Spans(e.sels)
}

// CurrentContents returns the current selection contents in document order.
func (e *Editor) CurrentContents() []string {
	out := make([]string, len(e.sels))
	for i, d := range e.sels {
		out[i] = e.content(d.Sort())
	}
	return out
}

// lineEnd returns the column of row's newline.
func (e *Editor) lineEnd(row int) int {
	next := len(e.text)
	if row+1 < len(e.lineStarts) {
		next = e.lineStarts[row+1]
	}
	return next - e.lineStarts[row] - 1
}

func (e *Editor) offset(p selection.Position) int {
	if p.Row >= len(e.lineStarts) {
		return len(e.text)
	}
	off := e.lineStarts[p.Row] + p.Col
	if off > len(e.text) {
		return len(e.text)
	}
	return off
}

func (e *Editor) position(off int) selection.Position {
	if off >= len(e.text) {
		off = len(e.text) - 1
	}
	row, found := slices.BinarySearch(e.lineStarts, off)
	if !found {
		row--
	}
	return selection.Pos(row, off-e.lineStarts[row])
}

func (e *Editor) content(s selection.Span) string {
	from := e.offset(s.Start())
	to := e.offset(s.End()) + 1
	if to > len(e.text) {
		to = len(e.text)
	}
	if from >= to {
		return ""
	}
	return e.text[from:to]
}

// scoped returns the spans of scope in document order, and the index of the
// primary one.
func (e *Editor) scoped(scope source.Scope) ([]selection.Span, int, error) {
	switch scope {
	case source.ScopeCurrent:
		return e.CurrentSpans(), e.primary, nil
	case source.ScopeSplitLines:
		return e.splitLines(), 0, nil
	case source.ScopeFullLines:
		return e.wholeRows(e.selectedRows(), false), 0, nil
	case source.ScopeFullLinesContent:
		return e.wholeRows(e.selectedRows(), true), 0, nil
	case source.ScopeDocumentLines:
		return e.wholeRows(e.allRows(), false), 0, nil
	case source.ScopeDocumentLinesContent:
		return e.wholeRows(e.allRows(), true), 0, nil
	}
	return nil, 0, failure.Usage("memsource", "unknown scope %q", scope)
}

func (e *Editor) splitLines() []selection.Span {
	var out []selection.Span
	for _, s := range e.CurrentSpans() {
		for row := s.Start().Row; row <= s.End().Row; row++ {
			from, to := 0, e.lineEnd(row)
			if row == s.Start().Row {
				from = s.Start().Col
			}
			if row == s.End().Row {
				to = s.End().Col
			}
			out = append(out, selection.RowRange(row, from, to))
		}
	}
	return out
}

func (e *Editor) selectedRows() []int {
	var rows []int
	seen := make(map[int]bool)
	for _, s := range e.CurrentSpans() {
		for row := s.Start().Row; row <= s.End().Row; row++ {
			if !seen[row] {
				seen[row] = true
				rows = append(rows, row)
			}
		}
	}
	slices.Sort(rows)
	return rows
}

func (e *Editor) allRows() []int {
	rows := make([]int, len(e.lineStarts))
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func (e *Editor) wholeRows(rows []int, contentOnly bool) []selection.Span {
	var out []selection.Span
	for _, row := range rows {
		if row >= len(e.lineStarts) {
			continue
		}
		end := e.lineEnd(row)
		if contentOnly {
			if end == 0 {
				continue
			}
			end--
		}
		out = append(out, selection.RowRange(row, 0, end))
	}
	return out
}

// Selections implements source.Source.
func (e *Editor) Selections(scope source.Scope) ([]string, error) {
	spans, _, err := e.scoped(scope)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = e.content(s)
	}
	return out, nil
}

// SelectionDescs implements source.Source.
func (e *Editor) SelectionDescs(scope source.Scope) ([]selection.Desc, error) {
	spans, primary, err := e.scoped(scope)
	if err != nil {
		return nil, err
	}
	descs := selection.Descs(spans)
	if scope == source.ScopeCurrent {
		descs = slices.Clone(e.sels)
	}
	n := len(descs)
	out := make([]selection.Desc, n)
	for k := range descs {
		out[k] = descs[(primary+k)%n]
	}
	return out, nil
}

// SetSelections implements source.Source.
func (e *Editor) SetSelections(contents []string) error {
	if len(contents) == 0 {
		return failure.ErrEmptySelections
	}
	if len(contents) != len(e.sels) {
		return failure.Consistency("memsource", "%d contents for %d selections", len(contents), len(e.sels))
	}

	var b strings.Builder
	type edit struct{ start, length int }
	edits := make([]edit, len(e.sels))
	last := 0
	for i, d := range e.sels {
		s := d.Sort()
		from := max(e.offset(s.Start()), last)
		to := min(e.offset(s.End())+1, len(e.text))
		if to < from {
			to = from
		}
		b.WriteString(e.text[last:from])
		edits[i] = edit{start: b.Len(), length: len(contents[i])}
		b.WriteString(contents[i])
		last = to
	}
	b.WriteString(e.text[last:])

	text := b.String()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	e.setText(text)

	for i, ed := range edits {
		end := ed.start + ed.length - 1
		if ed.length == 0 {
			end = ed.start
		}
		start := e.position(ed.start)
		stop := e.position(end)
		if e.sels[i].IsForward() {
			e.sels[i] = selection.NewDesc(start, stop)
		} else {
			e.sels[i] = selection.NewDesc(stop, start)
		}
	}
	return nil
}

// SetSelectionDescs implements source.Source.
func (e *Editor) SetSelectionDescs(descs []selection.Desc) error {
	if len(descs) == 0 {
		return failure.ErrEmptySelections
	}
	for _, d := range descs {
		s := d.Sort()
		if s.End().Row >= len(e.lineStarts) {
			return failure.Usage("memsource", "selection %v is outside the document", d)
		}
	}
	e.setSels(descs)
	return nil
}

// Register implements source.Source.
func (e *Editor) Register(r selection.Register) ([]string, error) {
	if r.IsCurrent() {
		return e.CurrentContents(), nil
	}
	return slices.Clone(e.registers[r]), nil
}

// WriteScratch implements source.Source.
func (e *Editor) WriteScratch(name, text string) error {
	e.scratch[name] = text
	return nil
}

// Message implements source.Source.
func (e *Editor) Message(primary, debug string) error {
	e.messages = append(e.messages, Message{Primary: primary, Debug: debug})
	return nil
}

var _ source.Source = (*Editor)(nil)
