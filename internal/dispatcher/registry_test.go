package dispatcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
)

func named(msg string, priority int) handler.Handler {
	return handler.NewHandlerFuncWithPriority(func(handler.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage(msg)
	}, priority)
}

func TestRegistry_Priority(t *testing.T) {
	r := NewRegistry()
	r.Register("box", named("low", 0))
	r.Register("box", named("high", 10))
	r.Register("box", named("mid", 5))

	h := r.Get("box")
	if h == nil {
		t.Fatal("expected handler")
	}
	if got := h.Handle(handler.Action{}, nil).Message; got != "high" {
		t.Errorf("expected high priority handler, got %q", got)
	}
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	if r.Get("join") != nil {
		t.Error("expected nil for unregistered action")
	}

	r.Register("join", named("join", 0))
	r.Register("box", named("box", 0))
	if !r.Has("join") {
		t.Error("expected join to be registered")
	}
	if diff := cmp.Diff([]string{"box", "join"}, r.List()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	r.Unregister("join")
	if r.Has("join") {
		t.Error("expected join to be unregistered")
	}
	if r.Count() != 1 {
		t.Errorf("expected 1 action, got %d", r.Count())
	}
}
