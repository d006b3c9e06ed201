// Package dispatcher routes selkit subcommands to handlers.
//
// Each subcommand ("box", "set", "pipe", ...) is an action name in the
// Registry. Handler families implement handler.NamespaceHandler and are
// registered once for all of their actions:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetSource(session)
//	d.SetRunner(runner)
//	d.RegisterNamespace(geometry.NewHandler())
//	d.RegisterNamespace(setop.NewHandler())
//
//	result := d.Dispatch(ctx, handler.Action{Name: "join"})
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built from the source, runner, settings and key script
//  2. Pre-dispatch hooks run and may cancel the action
//  3. The registry finds the highest priority handler
//  4. The handler runs, with panics turned into consistency errors
//  5. Post-dispatch hooks observe the result
//
// An unknown action is a usage error. Handlers report failures through
// handler.Result.Error, using the failure taxonomy; the caller turns the
// result into the single status message of the invocation.
package dispatcher
