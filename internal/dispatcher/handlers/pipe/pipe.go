package pipe

import (
	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// ActionPipe is the pipe action name.
const ActionPipe = "pipe"

// Handler implements namespace-based pipe handling.
type Handler struct{}

// NewHandler creates a new pipe handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the pipe namespace.
func (h *Handler) Namespace() string {
	return "pipe"
}

// Actions returns the subcommands handled here.
func (h *Handler) Actions() []string {
	return []string{ActionPipe}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionPipe
}

// HandleAction processes a pipe action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name != ActionPipe {
		return handler.Errorf("unknown pipe action: %s", action.Name)
	}
	if err := ctx.RequireSource(); err != nil {
		return handler.Error(err)
	}
	if err := ctx.RequireRunner(); err != nil {
		return handler.Error(err)
	}
	if len(action.Args.Positional) == 0 {
		return handler.Error(failure.Usage(ActionPipe, "missing command"))
	}
	name, args := action.Args.Positional[0], action.Args.Positional[1:]

	records, err := ctx.Source.Selections(source.ScopeCurrent)
	if err != nil {
		return handler.Error(err)
	}
	if len(records) == 0 {
		return handler.Error(failure.Usage(ActionPipe, "selection is empty"))
	}

	out, err := ctx.Runner.RunExternal(ctx.Context(), name, args, records)
	if err != nil {
		return handler.Error(err)
	}
	if len(out) != len(records) {
		return handler.Error(failure.Usage(ActionPipe,
			"%s returned %d selections, expected %d", name, len(out), len(records)).
			WithDetail("output=%q", out))
	}

	if err := ctx.Source.SetSelections(out); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("Piped %d selections through %s", len(records), name).
		WithData("count", len(records))
}
