package app

import (
	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/integration/process"
	"github.com/dshills/selkit/internal/kak"
	"github.com/dshills/selkit/internal/plugin/lua"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initKeyScript,
		b.initSource,
		b.initProcess,
		b.initDispatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}

	// Sections fall back to defaults on type errors; say so once they are all read.
	for path, err := range b.app.config.ConfigErrors() {
		b.app.logger.Warn("config %s: %v", path, err)
	}
	return nil
}

// initConfig loads defaults, the config file and the environment.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath, b.opts.ConfigOptions...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger picks the level from -debug, -log-level, then the config file.
func (b *bootstrapper) initLogger() error {
	name := b.app.config.Logging().Level
	if b.opts.LogLevel != "" {
		name = b.opts.LogLevel
	}
	level, err := ParseLogLevel(name)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if b.opts.Debug {
		level = LogLevelDebug
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if b.opts.LogOutput != nil {
		cfg.Output = b.opts.LogOutput
	}
	b.app.logger = NewLogger(cfg)

	if f := b.app.config.File(); f != "" {
		b.app.logger.Debug("loaded config %s", f)
	}
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initKeyScript loads keys.script when set.
func (b *bootstrapper) initKeyScript() error {
	path := b.app.config.Keys().Script
	if path == "" {
		return nil
	}
	ks, err := lua.LoadKeyScript(path, lua.WithLogger(b.app.logger.WithComponent("lua")))
	if err != nil {
		return &InitError{Component: "key script", Err: err}
	}
	b.app.keyScript = ks
	b.initOrder = append(b.initOrder, "keyScript")
	return nil
}

// initSource opens the editor session unless a source was injected.
func (b *bootstrapper) initSource() error {
	if b.opts.Source != nil {
		b.app.source = b.opts.Source
		b.initOrder = append(b.initOrder, "source")
		return nil
	}

	kc := b.app.config.Kak()
	client, err := kak.NewClient(kak.Config{
		CommandFifo:  kc.CommandFifo,
		ResponseFifo: kc.ResponseFifo,
		Logger:       b.app.logger.WithComponent("kak"),
	})
	if err != nil {
		return &InitError{Component: "kak session", Err: err}
	}
	b.app.source = kak.NewSession(client)
	b.initOrder = append(b.initOrder, "source")
	return nil
}

// initProcess creates the supervisor and runner used by pipe.
func (b *bootstrapper) initProcess() error {
	b.app.supervisor = process.NewSupervisor()
	b.app.runner = process.NewRunner(b.app.supervisor,
		process.WithTimeout(b.app.config.Pipe().Timeout),
		process.WithLogger(b.app.logger.WithComponent("pipe")),
	)
	if b.opts.Runner != nil {
		b.app.runner = b.opts.Runner
	}
	b.initOrder = append(b.initOrder, "process")
	return nil
}

// initDispatcher creates the dispatcher and registers every command.
func (b *bootstrapper) initDispatcher() error {
	d := dispatcher.NewWithDefaults()
	d.SetSource(b.app.source)
	d.SetRunner(b.app.runner)
	d.SetSettings(b.app.config)
	if b.app.keyScript != nil {
		d.SetKeyScript(b.app.keyScript)
	}
	d.SetLogger(b.app.logger.WithComponent("dispatch"))
	RegisterHandlers(d)

	b.app.dispatcher = d
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
	b.initOrder = b.initOrder[:0]
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "keyScript":
		if b.app.keyScript != nil {
			_ = b.app.keyScript.Close()
			b.app.keyScript = nil
		}
	case "process":
		if b.app.supervisor != nil {
			_ = b.app.supervisor.Shutdown(ShutdownTimeout)
			b.app.supervisor = nil
		}
		b.app.runner = nil
	case "source":
		b.app.source = nil
	case "dispatcher":
		b.app.dispatcher = nil
	case "logger":
		b.app.logger = nil
	case "config":
		b.app.config = nil
	}
}
