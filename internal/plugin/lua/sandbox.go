package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Logger receives script output.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Sandbox restricts Lua execution to pure computation.
type Sandbox struct {
	L      *lua.LState
	logger Logger
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, logger Logger) *Sandbox {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Sandbox{L: L, logger: logger}
}

// dangerousFuncs are removed from the globals.
var dangerousFuncs = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafePrint()
}

// installSafePrint replaces print with a version writing to the logger.
// Stdout is the editor's channel and must not receive script output.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.logger.Debug("lua: %s", strings.Join(parts, "\t"))
		return 0
	}))
}

// IsRemoved reports whether name was stripped from the globals.
func (s *Sandbox) IsRemoved(name string) bool {
	return s.L.GetGlobal(name) == lua.LNil
}
