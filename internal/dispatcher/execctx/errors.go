package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingSource indicates the selection source is required but not set.
	ErrMissingSource = errors.New("execution context: source is required")

	// ErrMissingRunner indicates an external process runner is required but not set.
	ErrMissingRunner = errors.New("execution context: runner is required")
)
