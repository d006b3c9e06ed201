package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/selkit/internal/failure"
)

// RecordSeparator terminates every record exchanged with an external command.
// Records may contain newlines, so they are null-delimited.
const RecordSeparator = "\x00"

// Logger receives debug output from the Runner.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Runner pipes records through external commands.
type Runner struct {
	supervisor *Supervisor
	timeout    time.Duration
	logger     Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout bounds each command's run time. Zero means no limit.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner starting its commands under s.
func NewRunner(s *Supervisor, opts ...RunnerOption) *Runner {
	r := &Runner{supervisor: s, logger: nopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunExternal starts name with args, writes every record followed by a null
// byte to its stdin and returns the null-delimited records of its stdout.
//
// Stdin is fed from a background goroutine while the caller's goroutine
// drains stdout, so neither side can block on a full pipe. The writer's error
// is reported only after stdout has been read to EOF.
func (r *Runner) RunExternal(ctx context.Context, name string, args []string, records []string) ([]string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	proc, err := r.supervisor.Start(name, cmd)
	if err != nil {
		return nil, failure.IO("pipe", err).WithDetail("starting %s", name)
	}
	r.logger.Debug("started %s (%s) with %d records", name, proc.ID, len(records))

	var g errgroup.Group
	g.Go(func() error {
		defer proc.Stdin.Close()
		for _, rec := range records {
			if _, err := io.WriteString(proc.Stdin, rec+RecordSeparator); err != nil {
				return fmt.Errorf("writing stdin: %w", err)
			}
		}
		return nil
	})

	out, readErr := io.ReadAll(proc.Stdout)
	writeErr := g.Wait()
	exitErr := proc.Wait()

	r.logger.Debug("%s exited with code %d after %s", name, proc.ExitCode(), proc.Runtime())

	if err := errors.Join(readErr, writeErr, exitErr); err != nil {
		if ctx.Err() != nil {
			err = errors.Join(ctx.Err(), err)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = name
		}
		return nil, failure.IO("pipe", err).WithDetail("%s", detail)
	}
	return SplitRecords(string(out)), nil
}

// SplitRecords splits null-delimited output. A trailing separator does not
// start an extra record.
func SplitRecords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, RecordSeparator), RecordSeparator)
}
