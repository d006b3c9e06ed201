package handler

import (
	"strconv"

	"github.com/dshills/selkit/internal/failure"
)

// Action is one parsed subcommand invocation.
type Action struct {
	// Name is the subcommand ("box", "set", ...).
	Name string
	// Args holds flags and positional arguments.
	Args Args
}

// Args are the arguments of an action. Each subcommand reads the fields
// it understands and ignores the rest.
type Args struct {
	// Positional are the non-flag arguments in order.
	Positional []string

	// Bounding collapses the selections to their envelope first (box -b).
	Bounding bool
	// ExcludeNewlines keeps line splits to line content (box/invert -n).
	ExcludeNewlines bool

	// Trim strips whitespace before keying (set -s).
	Trim bool
	// KeepWhitespace disables trimming (uniq -S).
	KeepWhitespace bool
	// Pattern extracts the key (set -r).
	Pattern string
	// IgnoreCase folds keys to lower case (-i).
	IgnoreCase bool
}

// Arg returns the i-th positional argument, or def when absent.
func (a Action) Arg(i int, def string) string {
	if i < len(a.Args.Positional) {
		return a.Args.Positional[i]
	}
	return def
}

// IntArg parses the i-th positional argument as an integer.
// A missing or malformed argument is a usage error.
func (a Action) IntArg(i int) (int, error) {
	if i >= len(a.Args.Positional) {
		return 0, failure.Usage(a.Name, "missing argument %d", i+1)
	}
	n, err := strconv.Atoi(a.Args.Positional[i])
	if err != nil {
		return 0, failure.Usage(a.Name, "'%s' is not a number", a.Args.Positional[i]).WithErr(err)
	}
	return n, nil
}
