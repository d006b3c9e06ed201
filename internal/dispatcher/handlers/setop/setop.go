package setop

import (
	"fmt"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/algebra"
	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// Action names for set operations.
const (
	ActionSet     = "set"
	ActionUniq    = "uniq"
	ActionXLookup = "xlookup"
)

// DefaultLookupRegister is read by xlookup when no register is given.
const DefaultLookupRegister = `"`

// Handler implements namespace-based set operation handling.
type Handler struct{}

// NewHandler creates a new set operation handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the set operation namespace.
func (h *Handler) Namespace() string {
	return "setop"
}

// Actions returns the subcommands handled here.
func (h *Handler) Actions() []string {
	return []string{ActionSet, ActionUniq, ActionXLookup}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionSet, ActionUniq, ActionXLookup:
		return true
	}
	return false
}

// HandleAction processes a set operation action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireSource(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionSet:
		return h.set(action, ctx)
	case ActionUniq:
		return h.uniq(action, ctx)
	case ActionXLookup:
		return h.xlookup(action, ctx)
	default:
		return handler.Errorf("unknown setop action: %s", action.Name)
	}
}

// errorSuffix renders the per-selection error count appended to messages.
func errorSuffix(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return " (1 error)"
	}
	return fmt.Sprintf(" (%d errors)", n)
}

// operand reads the contents a set operand refers to.
func operand(src source.Source, r selection.Register) ([]string, error) {
	if r.IsCurrent() {
		return src.Selections(source.ScopeCurrent)
	}
	return src.Register(r)
}

func (h *Handler) set(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	expr, err := algebra.ParseSetExpr(action.Args.Positional)
	if err != nil {
		return handler.Error(err)
	}

	kf, err := keys.New(ctx.KeyOptions(action.Args.Trim, action.Args.IgnoreCase, action.Args.Pattern))
	if err != nil {
		return handler.Error(err)
	}

	left, err := operand(ctx.Source, expr.Left)
	if err != nil {
		return handler.Error(err)
	}
	right, err := operand(ctx.Source, expr.Right)
	if err != nil {
		return handler.Error(err)
	}

	leftCounts, leftErrs := algebra.Frequencies(left, kf)
	rightCounts, rightErrs := algebra.Frequencies(right, kf)
	errs := leftErrs + rightErrs
	result := algebra.Apply(expr.Op, leftCounts, rightCounts)

	ctx.Log().Debug("set %s: %d left keys, %d right keys, %d result keys",
		expr, leftCounts.Len(), rightCounts.Len(), len(result))

	scratch := ctx.Config().Scratch().Name
	var msg string
	switch {
	case expr.Op == algebra.SetCompare:
		if err := ctx.Source.WriteScratch(scratch, algebra.CompareTable(expr, result, leftCounts, rightCounts)); err != nil {
			return handler.Error(err)
		}
		msg = fmt.Sprintf("Compared %d selections", len(result))

	case expr.Op != algebra.SetUnion && expr.Left.IsCurrent():
		descs, err := ctx.Source.SelectionDescs(source.ScopeCurrent)
		if err != nil {
			return handler.Error(err)
		}
		items, err := selection.ReconcileDocumentOrder(left, descs)
		if err != nil {
			return handler.Error(err)
		}
		kept := algebra.Restrict(items, kf, result)
		if len(kept) == 0 {
			return handler.Error(failure.Usage(ActionSet, "%s returned no selections", expr))
		}
		if err := ctx.Source.SetSelectionDescs(kept); err != nil {
			return handler.Error(err)
		}
		msg = fmt.Sprintf("%s returned %d selections", expr, len(result))

	default:
		if err := ctx.Source.WriteScratch(scratch, algebra.ListText(result)); err != nil {
			return handler.Error(err)
		}
		msg = fmt.Sprintf("%s returned %d selections", expr, len(result))
	}

	return handler.SuccessWithMessage(msg+errorSuffix(errs)).
		WithDetail("left=%d right=%d errors=%d", len(left), len(right), errs).
		WithData("count", len(result)).
		WithData("errors", errs)
}

// uniq keeps the first selection of every key in document order. Duplicates
// are emptied and then dropped from the selection list.
func (h *Handler) uniq(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	trim := ctx.Config().Keys().Trim && !action.Args.KeepWhitespace
	kf, err := keys.New(ctx.KeyOptions(trim, action.Args.IgnoreCase, action.Arg(0, "")))
	if err != nil {
		return handler.Error(err)
	}

	contents, err := ctx.Source.Selections(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}
	descs, err := ctx.Source.SelectionDescs(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}
	items, err := selection.ReconcileDocumentOrder(contents, descs)
	if err != nil {
		return handler.Error(err)
	}
	if len(items) == 0 {
		return handler.Error(failure.Usage(ActionUniq, "selection is empty"))
	}

	res := algebra.Dedup(items, kf)
	if err := ctx.Source.SetSelections(res.Contents); err != nil {
		return handler.Error(err)
	}

	// Emptied duplicates keep a one-character selection; drop them.
	after, err := source.SortedSpans(ctx.Source, source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}
	if len(after) != len(res.Keep) {
		return handler.Error(failure.Consistency(ActionUniq,
			"selection count changed from %d to %d", len(res.Keep), len(after)))
	}
	if err := source.SetSpans(ctx.Source, algebra.Select(after, res.Keep)); err != nil {
		return handler.Error(err)
	}

	return handler.Successf("%d unique selections out of %d%s", res.Kept, len(items), errorSuffix(res.Errors)).
		WithData("count", res.Kept).
		WithData("errors", res.Errors)
}

// xlookup replaces every selection with the value stored after it in a
// register holding key/value pairs.
func (h *Handler) xlookup(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	reg, err := selection.ParseRegister(action.Arg(0, DefaultLookupRegister))
	if err != nil {
		return handler.Error(failure.Usage(ActionXLookup, "invalid register '%s'", action.Arg(0, "")).WithErr(err))
	}

	entries, err := ctx.Source.Register(reg)
	if err != nil {
		return handler.Error(err)
	}
	table, err := algebra.NewLookupTable(entries)
	if err != nil {
		return handler.Error(err)
	}

	contents, err := ctx.Source.Selections(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}
	res := table.Replace(contents)
	for _, key := range res.Missing {
		ctx.Log().Warn("xlookup: key '%s' not found in register %s", key, reg)
	}

	if err := ctx.Source.SetSelections(res.Contents); err != nil {
		return handler.Error(err)
	}

	r := handler.SuccessWithMessage(res.Summary()).
		WithData("count", len(res.Contents)-len(res.Missing)).
		WithData("errors", len(res.Missing))
	if len(res.Missing) > 0 {
		r = r.WithDetail("missing keys: %q", res.Missing)
	}
	return r
}
