// Package source defines the contract between selkit's commands and the
// editor holding the selections.
//
// A Source reads selection contents and descriptors, optionally after
// transforming the selections in a throwaway draft (a Scope), and writes new
// contents or descriptors back. The editor owns the document; a Source never
// caches state across calls.
package source

import (
	"context"

	"github.com/dshills/selkit/internal/engine/selection"
)

// Scope names a draft transformation of the current selections evaluated
// before reading. The current selections are not modified by reading a scope.
type Scope string

// Scopes understood by every Source.
const (
	// ScopeCurrent reads the current selections unchanged.
	ScopeCurrent Scope = ""
	// ScopeSplitLines splits each selection at line boundaries.
	ScopeSplitLines Scope = "split-lines"
	// ScopeFullLines extends each selection to whole lines, one per row.
	ScopeFullLines Scope = "full-lines"
	// ScopeFullLinesContent is ScopeFullLines without trailing newlines.
	// Blank lines have no content and are omitted.
	ScopeFullLinesContent Scope = "full-lines-content"
	// ScopeDocumentLines selects every line of the document.
	ScopeDocumentLines Scope = "document-lines"
	// ScopeDocumentLinesContent is ScopeDocumentLines without trailing
	// newlines. Blank lines are omitted.
	ScopeDocumentLinesContent Scope = "document-lines-content"
)

// Source is the editor as seen by a command.
type Source interface {
	// Selections returns selection contents in document order.
	Selections(scope Scope) ([]string, error)
	// SelectionDescs returns descriptors, rotated so the primary selection is first.
	SelectionDescs(scope Scope) ([]selection.Desc, error)
	// SetSelections replaces the contents of the current selections.
	SetSelections(contents []string) error
	// SetSelectionDescs replaces the current selections.
	SetSelectionDescs(descs []selection.Desc) error
	// Register returns the values stored in a register.
	Register(r selection.Register) ([]string, error)
	// WriteScratch replaces the contents of the named scratch buffer.
	WriteScratch(name, text string) error
	// Message shows a status line and logs a debug detail.
	Message(primary, debug string) error
}

// Runner runs an external command over null-delimited records.
type Runner interface {
	RunExternal(ctx context.Context, name string, args []string, records []string) ([]string, error)
}

// SelectionsWithDesc reads contents and descriptors of scope and pairs them.
// The result is in primary-anchored order.
func SelectionsWithDesc(src Source, scope Scope) ([]selection.WithDesc, error) {
	contents, err := src.Selections(scope)
	if err != nil {
		return nil, err
	}
	descs, err := src.SelectionDescs(scope)
	if err != nil {
		return nil, err
	}
	return selection.Reconcile(contents, descs)
}

// SortedSpans reads the descriptors of scope in document order.
func SortedSpans(src Source, scope Scope) ([]selection.Span, error) {
	descs, err := src.SelectionDescs(scope)
	if err != nil {
		return nil, err
	}
	return selection.SortedSpans(descs), nil
}

// SetSpans applies spans as the new current selections.
func SetSpans(src Source, spans []selection.Span) error {
	return src.SetSelectionDescs(selection.Descs(spans))
}
