// Package main is the entry point for selkit, a set of selection commands
// run from inside an editor session.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/selkit/internal/app"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/failure"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errVersion = errors.New("version requested")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, action, err := parseArgs(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errVersion):
		fmt.Fprintf(stdout, "selkit %s (commit %s, built %s)\n", version, commit, date)
		return exitOK
	case err != nil:
		fmt.Fprintf(stderr, "selkit: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "selkit: %v\n", err)
		return exitFailure
	}
	defer func() { _ = application.Close() }()

	// The outcome has already been echoed to the editor and logged.
	if err := application.Run(ctx, action); err != nil {
		if failure.KindOf(err) == failure.KindUsage {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

// command describes one subcommand's flags.
type command struct {
	name  string
	args  string
	help  string
	flags func(fs *flag.FlagSet, a *handler.Args)
}

var commands = []command{
	{
		name: "box",
		help: "clip each selection to the rectangle of its columns",
		flags: func(fs *flag.FlagSet, a *handler.Args) {
			fs.BoolVar(&a.Bounding, "b", false, "box the bounding selection of all selections")
			fs.BoolVar(&a.ExcludeNewlines, "n", false, "exclude newlines")
		},
	},
	{
		name: "invert",
		help: "select everything that is not selected",
		flags: func(fs *flag.FlagSet, a *handler.Args) {
			fs.BoolVar(&a.ExcludeNewlines, "n", false, "exclude newlines")
		},
	},
	{
		name: "join",
		help: "merge all selections into one",
	},
	{
		name: "keep-every",
		args: "N",
		help: "keep the first of every N selections, starting at the primary",
	},
	{
		name: "set",
		args: "[--] LEFT OP RIGHT | OP REG | REG OP | EXPR",
		help: "intersect (&), subtract (-), union (+) or compare (?) selections and registers",
		flags: func(fs *flag.FlagSet, a *handler.Args) {
			fs.BoolVar(&a.Trim, "s", false, "trim whitespace before comparing")
			fs.StringVar(&a.Pattern, "r", "", "compare the first capture group of `REGEX`")
			fs.BoolVar(&a.IgnoreCase, "i", false, "ignore case")
		},
	},
	{
		name: "uniq",
		args: "[REGEX]",
		help: "keep the first selection of every key",
		flags: func(fs *flag.FlagSet, a *handler.Args) {
			fs.BoolVar(&a.KeepWhitespace, "S", false, "do not trim whitespace")
			fs.BoolVar(&a.IgnoreCase, "i", false, "ignore case")
		},
	},
	{
		name: "xlookup",
		args: "[REGISTER]",
		help: "replace each selection with its value in a key/value register",
	},
	{
		name: "pipe",
		args: "CMD [ARGS...]",
		help: "replace selections with the null-delimited output of CMD",
	},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// parseArgs parses global flags, the subcommand and its flags.
func parseArgs(args []string, stderr io.Writer) (app.Options, handler.Action, error) {
	var opts app.Options
	var showVersion bool

	global := flag.NewFlagSet("selkit", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	global.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	global.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	global.BoolVar(&showVersion, "version", false, "Show version information")
	global.Usage = func() {
		fmt.Fprintf(stderr, "Usage: selkit [options] COMMAND [flags] [args]\n\nOptions:\n")
		global.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-11s %s\n", c.name, c.help)
		}
	}

	if err := global.Parse(args); err != nil {
		return opts, handler.Action{}, err
	}
	if showVersion {
		return opts, handler.Action{}, errVersion
	}
	if global.NArg() == 0 {
		global.Usage()
		return opts, handler.Action{}, errors.New("missing command")
	}

	name := global.Arg(0)
	cmd, ok := findCommand(name)
	if !ok {
		return opts, handler.Action{}, fmt.Errorf("unknown command %q", name)
	}

	action := handler.Action{Name: name}
	fs := flag.NewFlagSet("selkit "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	if cmd.flags != nil {
		cmd.flags(fs, &action.Args)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: selkit %s [flags] %s\n\n%s\n", name, cmd.args, cmd.help)
		fs.PrintDefaults()
	}

	flags, rest := splitLeadingFlags(fs, global.Args()[1:])
	if err := fs.Parse(flags); err != nil {
		return opts, handler.Action{}, err
	}
	if len(rest) > 0 {
		action.Args.Positional = rest
	}
	return opts, action, nil
}

// splitLeadingFlags separates the flags defined on fs from the arguments
// that follow them. Parsing stops at "--", at the first argument that is not
// a defined flag or -h, or at a lone "-". Set operands like "-a" and the arguments
// of a piped command are therefore left alone.
func splitLeadingFlags(fs *flag.FlagSet, args []string) (flags, rest []string) {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if len(a) < 2 || a[0] != '-' {
			break
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name == "h" || name == "help" {
			i++
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			break
		}
		i++
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); (!ok || !b.IsBoolFlag()) && !hasValue {
			i++
		}
	}
	i = min(i, len(args))
	return args[:i], args[i:]
}
