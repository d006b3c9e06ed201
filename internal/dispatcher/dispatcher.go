package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// Dispatcher routes subcommands to handlers.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry

	// Collaborators handed to every handler
	source    source.Source
	runner    source.Runner
	settings  *config.Config
	keyScript keys.Scripter
	logger    execctx.Logger

	config Config

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		registry: NewRegistry(),
		config:   config,
	}
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetSource sets the selection source.
func (d *Dispatcher) SetSource(src source.Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = src
}

// SetRunner sets the external process runner.
func (d *Dispatcher) SetRunner(r source.Runner) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runner = r
}

// SetSettings sets the merged configuration.
func (d *Dispatcher) SetSettings(cfg *config.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settings = cfg
}

// SetKeyScript sets the user key script.
func (d *Dispatcher) SetKeyScript(s keys.Scripter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyScript = s
}

// SetLogger sets the logger handed to handlers.
func (d *Dispatcher) SetLogger(l execctx.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(ctx context.Context, action handler.Action) handler.Result {
	ectx := d.buildContext(ctx)

	if !d.runPreHooks(&action, ectx) {
		return handler.Error(failure.Usage(action.Name, "cancelled").WithErr(ErrActionCancelled))
	}

	h := d.registry.Get(action.Name)
	if h == nil {
		return handler.Error(failure.Usage("dispatch", "unknown command '%s'", action.Name).WithErr(ErrNoHandler))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ectx)
	} else {
		result = h.Handle(action, ectx)
	}

	d.runPostHooks(&action, ectx, &result)
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action handler.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(failure.Consistency(action.Name, "internal error").
				WithDetail("%v\n%s", r, stack[:n]).
				WithErr(fmt.Errorf("%w: %v", ErrPanic, r)))
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(ctx context.Context) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ectx := execctx.New(ctx)
	ectx.Source = d.source
	ectx.Runner = d.runner
	ectx.Settings = d.settings
	ectx.KeyScript = d.keyScript
	if d.logger != nil {
		ectx.Logger = d.logger
	}
	return ectx
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(handler.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers every action of a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	adapter := handler.NewNamespaceAdapter(h)
	for _, name := range h.Actions() {
		d.registry.Register(name, adapter)
	}
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *handler.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *handler.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
