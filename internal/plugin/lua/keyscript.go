package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// KeyFunction is the global a key script must define.
const KeyFunction = "key"

// KeyScript calls a script's key(s) function.
type KeyScript struct {
	state *State
	path  string
}

// LoadKeyScript runs the file at path in a fresh state and checks that it
// defines the key function.
func LoadKeyScript(path string, opts ...StateOption) (*KeyScript, error) {
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}
	if err := state.DoFile(path); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading key script %s: %w", path, err)
	}
	if fn := state.GetGlobal(KeyFunction); fn.Type() != lua.LTFunction {
		_ = state.Close()
		return nil, fmt.Errorf("key script %s: %w: %q", path, ErrFunctionNotFound, KeyFunction)
	}
	return &KeyScript{state: state, path: path}, nil
}

// Key returns key(s). A number result is converted to its string form;
// nil or any other type is an error.
func (k *KeyScript) Key(s string) (string, error) {
	results, err := k.state.Call(KeyFunction, lua.LString(s))
	if err != nil {
		return "", fmt.Errorf("%s: %w", k.path, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%s: %w (got nothing)", k.path, ErrBadReturn)
	}
	switch v := results[0].(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	}
	return "", fmt.Errorf("%s: %w (got %s)", k.path, ErrBadReturn, results[0].Type())
}

// Close releases the script's state.
func (k *KeyScript) Close() error {
	return k.state.Close()
}
