// Package app wires one selkit invocation together: configuration, logging,
// the optional key script, the editor session, the process runner and the
// dispatcher. Every invocation reports its outcome to the editor with exactly
// one message.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/integration/process"
	"github.com/dshills/selkit/internal/plugin/lua"
	"github.com/dshills/selkit/internal/source"
)

// ShutdownTimeout bounds how long Close waits for child processes.
const ShutdownTimeout = 2 * time.Second

// Application holds the components of one invocation.
type Application struct {
	mu sync.Mutex

	config     *config.Config
	logger     *Logger
	keyScript  *lua.KeyScript
	source     source.Source
	supervisor *process.Supervisor
	runner     source.Runner
	dispatcher *dispatcher.Dispatcher

	closed bool
	opts   Options
}

// Options configures the application.
type Options struct {
	// ConfigPath names the configuration file. Empty searches the user
	// config directory.
	ConfigPath string

	// LogLevel overrides logging.level.
	LogLevel string

	// Debug forces the debug log level.
	Debug bool

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Source replaces the editor session, e.g. with an in-memory document.
	Source source.Source

	// Runner replaces the process runner used by pipe.
	Runner source.Runner

	// ConfigOptions are passed to config.Load.
	ConfigOptions []config.Option
}

// New creates an Application. Components started before a failure are
// released before the error is returned.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the merged configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}

// Source returns the selection source.
func (app *Application) Source() source.Source {
	return app.source
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Run dispatches action and echoes the outcome to the editor. The returned
// error is the command's error, joined with a failure to deliver the message.
func (app *Application) Run(ctx context.Context, action handler.Action) error {
	app.mu.Lock()
	closed := app.closed
	app.mu.Unlock()
	if closed {
		return ErrClosed
	}

	log := app.Logger().WithField("command", action.Name)
	start := time.Now()

	result := app.dispatcher.Dispatch(ctx, action)
	primary, detail := Report(result)

	if result.IsError() {
		log.WithField("kind", failure.KindOf(result.Error)).Error("%s", primary)
		if detail != "" {
			log.Debug("%s", detail)
		}
	} else {
		log.WithFields(map[string]any{
			"count":  result.GetDataInt("count"),
			"errors": result.GetDataInt("errors"),
		}).Debug("%s (%s)", primary, time.Since(start))
	}

	if err := app.source.Message(primary, detail); err != nil {
		log.Error("reporting result: %v", err)
		return errors.Join(result.Error, err)
	}
	return result.Error
}

// Report returns the status line and debug detail for a result.
func Report(r handler.Result) (primary, detail string) {
	if r.IsError() {
		return failure.Describe(r.Error)
	}
	return r.Message, r.Detail
}

// Close stops child processes and releases the key script. It is safe to
// call more than once.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return nil
	}
	app.closed = true

	var errs []error
	if app.supervisor != nil {
		if err := app.supervisor.Shutdown(ShutdownTimeout); err != nil {
			errs = append(errs, errors.Join(ErrShutdownTimeout, err))
		}
	}
	if app.keyScript != nil {
		errs = append(errs, app.keyScript.Close())
	}
	return errors.Join(errs...)
}
