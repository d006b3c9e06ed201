package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/selkit/internal/config/loader"
)

// DefaultScratchName is the buffer receiving union and compare listings.
const DefaultScratchName = "*selkit-set*"

// configFileNames are tried in order inside the user config directory.
var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds the merged configuration of one invocation.
type Config struct {
	mu sync.RWMutex

	merged map[string]any
	file   string

	userConfigDir string
	fs            loader.FileSystem
	env           *loader.EnvLoader

	// configErrors stores type errors met by the section accessors.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the directory searched when no file is named.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithFileSystem replaces the OS file system.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvLoader replaces the SELKIT_ environment loader. Nil disables it.
func WithEnvLoader(l *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// New returns a Config holding only the defaults.
func New() *Config {
	return &Config{merged: defaultConfig()}
}

// Load merges defaults, the config file and the environment. An empty path
// searches the user config directory; a missing file there is not an error.
// A named file that does not exist is.
func Load(path string, opts ...Option) (*Config, error) {
	c := &Config{
		merged: defaultConfig(),
		fs:     loader.DefaultFS(),
		env:    loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	if err := c.loadFile(path); err != nil {
		return nil, err
	}
	if err := c.loadEnvironment(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadFile(path string) error {
	if path != "" {
		if _, err := c.fs.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return c.mergeFile(path)
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(c.userConfigDir, name)
		if _, err := c.fs.Stat(candidate); err == nil {
			return c.mergeFile(candidate)
		}
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	l, err := loader.ForPath(c.fs, path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.merged = loader.DeepMerge(c.merged, data)
	c.file = path
	return nil
}

func (c *Config) loadEnvironment() error {
	if c.env == nil {
		return nil
	}
	data, err := c.env.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	c.merged = loader.DeepMerge(c.merged, data)
	return nil
}

// File returns the config file that was merged, or "".
func (c *Config) File() string {
	return c.file
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.merged, path)
}

// Set overrides a single setting, as command line flags do.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.merged == nil {
		c.merged = make(map[string]any)
	}
	loader.SetByPath(c.merged, path, value)
	return nil
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetDuration returns a duration at the given path. Strings are parsed with
// time.ParseDuration; bare numbers are seconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("%q", val)}
		}
		return d, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case int64:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "selkit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "selkit")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"keys": map[string]any{
			"trim":       true,
			"ignoreCase": false,
			"script":     "",
		},
		"scratch": map[string]any{
			"name": DefaultScratchName,
		},
		"pipe": map[string]any{
			"timeout": "0s",
		},
		"kak": map[string]any{
			"commandFifo":  "",
			"responseFifo": "",
		},
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
