package geometry

import (
	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/algebra"
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// Action names for geometry operations.
const (
	ActionBox       = "box"        // rectangle per selection
	ActionInvert    = "invert"     // complement within the document
	ActionJoin      = "join"       // bounding selection of all
	ActionKeepEvery = "keep-every" // first of every N
)

// Handler implements namespace-based geometry handling.
type Handler struct{}

// NewHandler creates a new geometry handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the geometry namespace.
func (h *Handler) Namespace() string {
	return "geometry"
}

// Actions returns the subcommands handled here.
func (h *Handler) Actions() []string {
	return []string{ActionBox, ActionInvert, ActionJoin, ActionKeepEvery}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionBox, ActionInvert, ActionJoin, ActionKeepEvery:
		return true
	}
	return false
}

// HandleAction processes a geometry action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireSource(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionBox:
		return h.box(action, ctx)
	case ActionInvert:
		return h.invert(action, ctx)
	case ActionJoin:
		return h.join(ctx)
	case ActionKeepEvery:
		return h.keepEvery(action, ctx)
	default:
		return handler.Errorf("unknown geometry action: %s", action.Name)
	}
}

// documentScope returns the scope listing every document line.
func documentScope(excludeNewlines bool) source.Scope {
	if excludeNewlines {
		return source.ScopeDocumentLinesContent
	}
	return source.ScopeDocumentLines
}

// box clips every selection to its column rectangle. Line spans come from
// the whole document so that nothing is modified before the result is set.
func (h *Handler) box(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels, err := source.SortedSpans(ctx.Source, source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}

	if action.Args.Bounding {
		env, err := algebra.Envelope(sels)
		if err != nil {
			return handler.Error(err)
		}
		sels = []selection.Span{env}
	}

	lines, err := source.SortedSpans(ctx.Source, documentScope(action.Args.ExcludeNewlines))
	if err != nil {
		return handler.Error(err)
	}

	boxed, err := algebra.Box(sels, lines, algebra.BoxOptions{
		SkipMissingRows: action.Args.ExcludeNewlines,
	})
	if err != nil {
		return handler.Error(err)
	}
	if len(boxed) == 0 {
		return handler.Error(failure.Usage(ActionBox, "box does not intersect any line").
			WithDetail("selections=%v", sels))
	}

	if err := source.SetSpans(ctx.Source, boxed); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("Boxed %d selection(s)", len(boxed)).
		WithData("count", len(boxed))
}

// invert replaces the selections with their complement. Selections are
// split per line first since subtraction is only defined within a row.
func (h *Handler) invert(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels, err := source.SortedSpans(ctx.Source, source.ScopeSplitLines)
	if err != nil {
		return handler.Error(err)
	}
	if len(sels) == 0 {
		return handler.Error(failure.Usage(ActionInvert, "selection is empty"))
	}

	doc, err := source.SortedSpans(ctx.Source, documentScope(action.Args.ExcludeNewlines))
	if err != nil {
		return handler.Error(err)
	}

	inverted := algebra.Invert(sels, doc)
	if len(inverted) == 0 {
		return handler.Error(failure.Usage(ActionInvert, "selections cover the whole document"))
	}

	if err := source.SetSpans(ctx.Source, inverted); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("Inverted %d selection(s)", countRows(sels)).
		WithData("count", len(inverted))
}

// countRows counts the distinct rows that sorted spans start on.
func countRows(spans []selection.Span) int {
	n := 0
	for i, s := range spans {
		if i == 0 || s.Start().Row != spans[i-1].Start().Row {
			n++
		}
	}
	return n
}

func (h *Handler) join(ctx *execctx.ExecutionContext) handler.Result {
	descs, err := ctx.Source.SelectionDescs(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}

	joined, err := algebra.Join(selection.Spans(descs))
	if err != nil {
		return handler.Error(err)
	}

	if err := source.SetSpans(ctx.Source, []selection.Span{joined}); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("Joined %d selection(s)", len(descs)).
		WithData("count", 1)
}

// keepEvery samples the selections in the editor's order, which starts at
// the primary selection.
func (h *Handler) keepEvery(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	n, err := action.IntArg(0)
	if err != nil {
		return handler.Error(err)
	}

	descs, err := ctx.Source.SelectionDescs(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}

	kept, err := algebra.KeepEvery(descs, n)
	if err != nil {
		return handler.Error(err)
	}

	if err := ctx.Source.SetSelectionDescs(kept); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("%d kept from %d", len(kept), len(descs)).
		WithData("count", len(kept))
}
