// Package lua runs user key scripts in a sandboxed gopher-lua state.
//
// A key script is a Lua file defining a global function key(s) that maps a
// selection's key to a new key:
//
//	function key(s)
//	    return (s:gsub("^v", ""))
//	end
//
// # State
//
// State wraps an LState opened with the base, table, string and math
// libraries only. io, os, debug and package are never opened:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
// # Sandbox
//
// The Sandbox removes the loaders (dofile, loadfile, load, loadstring) and
// routes print to a logger instead of stdout, which belongs to the editor.
//
// # KeyScript
//
// KeyScript loads a file into a State and calls its key function once per
// selection. A failure in one call does not poison later calls.
package lua
