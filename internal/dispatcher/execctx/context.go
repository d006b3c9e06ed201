// Package execctx provides the execution context for subcommand handlers.
package execctx

import (
	"context"

	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/source"
)

// Logger is the logging surface handlers use.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// ExecutionContext carries everything a handler may touch.
type ExecutionContext struct {
	// Ctx bounds blocking work such as external processes.
	Ctx context.Context

	// Source is the editor holding the selections.
	Source source.Source

	// Runner runs external commands for pipe.
	Runner source.Runner

	// Settings is the merged configuration. Nil means defaults.
	Settings *config.Config

	// KeyScript is the loaded user key script, if configured.
	KeyScript keys.Scripter

	// Logger receives handler diagnostics.
	Logger Logger
}

// New creates an execution context bound to ctx.
func New(ctx context.Context) *ExecutionContext {
	return &ExecutionContext{
		Ctx:    ctx,
		Logger: nopLogger{},
	}
}

// Context returns Ctx, or context.Background when unset.
func (c *ExecutionContext) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Log returns Logger, or a logger that discards everything.
func (c *ExecutionContext) Log() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}

// RequireSource returns ErrMissingSource when no source is set.
func (c *ExecutionContext) RequireSource() error {
	if c.Source == nil {
		return ErrMissingSource
	}
	return nil
}

// RequireRunner returns ErrMissingRunner when no runner is set.
func (c *ExecutionContext) RequireRunner() error {
	if c.Runner == nil {
		return ErrMissingRunner
	}
	return nil
}

// Config returns Settings, or the defaults when unset.
func (c *ExecutionContext) Config() *config.Config {
	if c.Settings == nil {
		c.Settings = config.New()
	}
	return c.Settings
}

// KeyOptions merges the configured key settings with per-invocation flags.
// Flags can only switch trimming and case folding on.
func (c *ExecutionContext) KeyOptions(trim, ignoreCase bool, pattern string) keys.Options {
	cfg := c.Config().Keys()
	return keys.Options{
		Trim:       trim,
		Pattern:    pattern,
		IgnoreCase: ignoreCase || cfg.IgnoreCase,
		Script:     c.KeyScript,
	}
}
