package config

import (
	"errors"
	"time"
)

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string
}

// KeysConfig contains the key function defaults shared by uniq and set.
type KeysConfig struct {
	Trim       bool
	IgnoreCase bool
	// Script is the path of a Lua file defining key(s). Empty disables it.
	Script string
}

// ScratchConfig names the side buffer.
type ScratchConfig struct {
	Name string
}

// PipeConfig contains external process settings.
type PipeConfig struct {
	// Timeout bounds one pipe invocation. Zero means no limit.
	Timeout time.Duration
}

// KakConfig overrides the session fifos normally taken from the environment.
type KakConfig struct {
	CommandFifo  string
	ResponseFifo string
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

// Keys returns type-safe access to key function settings.
func (c *Config) Keys() KeysConfig {
	return KeysConfig{
		Trim:       c.getBoolOr("keys.trim", true),
		IgnoreCase: c.getBoolOr("keys.ignoreCase", false),
		Script:     c.getStringOr("keys.script", ""),
	}
}

// Scratch returns type-safe access to scratch buffer settings.
func (c *Config) Scratch() ScratchConfig {
	name := c.getStringOr("scratch.name", DefaultScratchName)
	if name == "" {
		name = DefaultScratchName
	}
	return ScratchConfig{Name: name}
}

// Pipe returns type-safe access to pipe settings.
func (c *Config) Pipe() PipeConfig {
	return PipeConfig{
		Timeout: c.getDurationOr("pipe.timeout", 0),
	}
}

// Kak returns type-safe access to session settings.
func (c *Config) Kak() KakConfig {
	return KakConfig{
		CommandFifo:  c.getStringOr("kak.commandFifo", ""),
		ResponseFifo: c.getStringOr("kak.responseFifo", ""),
	}
}

// These methods only return the default for ErrSettingNotFound silently.
// Type errors also return the default but are recorded.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) recordUnlessMissing(path string, err error) {
	if errors.Is(err, ErrSettingNotFound) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	// Only the first error for each path is kept.
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns the type errors met while reading sections.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
