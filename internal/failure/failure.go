// Package failure defines the error taxonomy shared by every selkit command.
//
// Errors fall into four kinds:
//
//   - Usage: the user asked for something that cannot be done (empty selection
//     set, malformed register expression, invalid regular expression).
//   - Consistency: the editor reported data that violates an invariant (count
//     mismatch between selections and descriptors, missing rows).
//   - Element: a single selection failed evaluation. These are recovered
//     locally and only counted.
//   - IO: the editor channel or a child process failed.
//
// Usage, consistency and IO errors abort the invocation before any selection
// change is committed.
package failure

import (
	"errors"
	"fmt"
)

// Kind categorizes an error.
type Kind uint8

const (
	// KindUsage is a user-facing usage error.
	KindUsage Kind = iota + 1
	// KindConsistency is an invariant violation in data supplied by the editor.
	KindConsistency
	// KindElement is an error scoped to a single selection.
	KindElement
	// KindIO is a failure of the editor channel or a child process.
	KindIO
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindConsistency:
		return "consistency"
	case KindElement:
		return "element"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Kind sentinels, matched by errors.Is against any *Error of that kind.
var (
	ErrUsage       = errors.New("usage error")
	ErrConsistency = errors.New("consistency error")
	ErrElement     = errors.New("element error")
	ErrIO          = errors.New("io error")
)

// ErrEmptySelections is returned when a command would set an empty selection list.
var ErrEmptySelections = &Error{
	Kind:    KindUsage,
	Message: "no selections remain",
	Detail:  "attempted to set selections to an empty list",
}

// Error is a categorized error with a short message for the status line and an
// optional detail for the debug buffer.
type Error struct {
	Kind    Kind
	Op      string // Operation that failed (e.g. "box", "reconcile")
	Message string // One-line message shown to the user
	Detail  string // Optional debug detail
	Err     error  // Underlying error
}

// Usage creates a usage error.
func Usage(op, format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Consistency creates a consistency error.
func Consistency(op, format string, args ...any) *Error {
	return &Error{Kind: KindConsistency, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Element creates a per-element error.
func Element(op string, err error) *Error {
	return &Error{Kind: KindElement, Op: op, Message: "selection could not be evaluated", Err: err}
}

// IO wraps an I/O failure.
func IO(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Message: "editor communication failed", Err: err}
}

// WithDetail returns the error with a debug detail attached.
func (e *Error) WithDetail(format string, args ...any) *Error {
	if e == nil {
		return nil
	}
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithErr returns the error with an underlying cause attached.
func (e *Error) WithErr(err error) *Error {
	if e == nil {
		return nil
	}
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches kind sentinels and identical error instances.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return e == t
	}
	switch target {
	case ErrUsage:
		return e.Kind == KindUsage
	case ErrConsistency:
		return e.Kind == KindConsistency
	case ErrElement:
		return e.Kind == KindElement
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors outside the taxonomy are reported as IO errors.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}

// Describe splits err into the primary message and debug detail shown to the user.
func Describe(err error) (primary, detail string) {
	if err == nil {
		return "", ""
	}
	var fe *Error
	if !errors.As(err, &fe) {
		return "Error: " + err.Error(), ""
	}
	primary = "Error: " + fe.Message
	detail = fe.Detail
	if fe.Err != nil {
		if detail != "" {
			detail += ": "
		}
		detail += fe.Err.Error()
	}
	return primary, detail
}
