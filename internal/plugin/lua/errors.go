package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrFunctionNotFound is returned when a called global is not defined.
	ErrFunctionNotFound = errors.New("lua function not found")

	// ErrBadReturn is returned when a key function does not return a string.
	ErrBadReturn = errors.New("key function must return a string")
)
