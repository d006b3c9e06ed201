package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selkit/internal/dispatcher/handler"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want handler.Action
	}{
		{
			name: "box flags",
			args: []string{"box", "-b", "-n"},
			want: handler.Action{Name: "box", Args: handler.Args{Bounding: true, ExcludeNewlines: true}},
		},
		{
			name: "keep-every",
			args: []string{"keep-every", "3"},
			want: handler.Action{Name: "keep-every", Args: handler.Args{Positional: []string{"3"}}},
		},
		{
			name: "set operand looks like a flag",
			args: []string{"set", "-a"},
			want: handler.Action{Name: "set", Args: handler.Args{Positional: []string{"-a"}}},
		},
		{
			name: "set flags then operands",
			args: []string{"set", "-s", "-i", "-r", `(\w+)`, "a", "-", "b"},
			want: handler.Action{Name: "set", Args: handler.Args{
				Trim: true, IgnoreCase: true, Pattern: `(\w+)`,
				Positional: []string{"a", "-", "b"},
			}},
		},
		{
			name: "set flag with value",
			args: []string{"set", "-r=x(.)", "&a"},
			want: handler.Action{Name: "set", Args: handler.Args{Pattern: "x(.)", Positional: []string{"&a"}}},
		},
		{
			name: "double dash",
			args: []string{"set", "--", "-i"},
			want: handler.Action{Name: "set", Args: handler.Args{Positional: []string{"-i"}}},
		},
		{
			name: "uniq",
			args: []string{"uniq", "-S", "-i", "^(.)"},
			want: handler.Action{Name: "uniq", Args: handler.Args{
				KeepWhitespace: true, IgnoreCase: true, Positional: []string{"^(.)"},
			}},
		},
		{
			name: "pipe keeps command flags",
			args: []string{"pipe", "sort", "-r"},
			want: handler.Action{Name: "pipe", Args: handler.Args{Positional: []string{"sort", "-r"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := parseArgs(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseArgs() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("action mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseArgs_Global(t *testing.T) {
	opts, action, err := parseArgs([]string{"-config", "/tmp/s.toml", "-log-level", "warn", "-debug", "join"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.ConfigPath != "/tmp/s.toml" {
		t.Errorf("expected config path, got %q", opts.ConfigPath)
	}
	if opts.LogLevel != "warn" || !opts.Debug {
		t.Errorf("unexpected log options %q %v", opts.LogLevel, opts.Debug)
	}
	if action.Name != "join" {
		t.Errorf("expected join, got %q", action.Name)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"sort"}},
		{name: "unknown global flag", args: []string{"-x", "join"}},
		{name: "missing flag value", args: []string{"set", "-r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseArgs(tt.args, &bytes.Buffer{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRun_UsageAndVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-version"}, &stdout, &stderr); code != exitOK {
		t.Errorf("expected exit %d, got %d", exitOK, code)
	}
	if !strings.HasPrefix(stdout.String(), "selkit dev") {
		t.Errorf("unexpected version output %q", stdout.String())
	}

	if code := run([]string{"-h"}, &stdout, &stderr); code != exitOK {
		t.Errorf("expected exit %d for help, got %d", exitOK, code)
	}

	stderr.Reset()
	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != exitUsage {
		t.Errorf("expected exit %d, got %d", exitUsage, code)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Errorf("expected unknown command on stderr, got %q", stderr.String())
	}
}

func TestParseArgs_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, _, err := parseArgs([]string{"box", "-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "selkit box") {
		t.Errorf("expected box usage, got %q", stderr.String())
	}
}
