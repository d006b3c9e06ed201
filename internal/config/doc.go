// Package config provides selkit's layered configuration.
//
// Layers are merged with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Set after Load
//	├─────────────────────────────┤
//	│  3. Environment (SELKIT_*)  │
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/selkit/config.{toml,yaml}
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// Settings are addressed by dot-separated paths ("keys.ignoreCase") and read
// through typed section accessors:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	timeout := cfg.Pipe().Timeout
//
// A value of the wrong type falls back to the default and is recorded in
// ConfigErrors rather than failing the invocation.
package config
