package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("application closed")

	// ErrShutdownTimeout indicates child processes outlived Close.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
