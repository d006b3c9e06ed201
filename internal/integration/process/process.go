package process

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// State represents the state of a process.
type State int

const (
	// StateCreated indicates the process has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the process is currently running.
	StateRunning
	// StateExited indicates the process has exited normally or with an error.
	StateExited
	// StateKilled indicates the process was killed by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process is a child process fed through its stdin and drained through its
// stdout.
//
// Unlike a fire-and-forget child, a Process is not reaped automatically:
// exec.Cmd closes the stdout pipe on Wait, so the owner calls Wait only
// after it has finished reading.
type Process struct {
	// ID is the unique identifier for this process.
	ID string

	// Name is the command name.
	Name string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Stdin is nil if the command's stdin was configured by the caller.
	Stdin io.WriteCloser

	// Stdout is nil if the command's stdout was configured by the caller.
	Stdout io.ReadCloser

	// Started is the time the process was started.
	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// NewProcess creates a Process wrapping cmd, which must not be started.
func NewProcess(id, name string, cmd *exec.Cmd) *Process {
	p := &Process{
		ID:   id,
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1) // -1 indicates not exited
	return p
}

// State returns the current process state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the exit code, or -1 if the process has not been reaped.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns the error from waiting on the process.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done returns a channel that is closed once the process has been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process has started and not been reaped.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// PID returns the process ID, or -1 if not started.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Kill sends SIGKILL to the process.
func (p *Process) Kill() error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return ErrProcessNotStarted
	}
	return p.Cmd.Process.Signal(syscall.SIGKILL)
}

func (p *Process) start() error {
	if p.State() != StateCreated {
		return ErrProcessAlreadyStarted
	}
	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}
	p.Started = time.Now()
	p.state.Store(int32(StateRunning))
	return nil
}

// Wait reaps the process and returns its exit error. It is safe to call
// more than once; later calls return the first result.
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		if p.State() == StateCreated {
			p.mu.Lock()
			p.exitErr = ErrProcessNotStarted
			p.mu.Unlock()
			close(p.done)
			return
		}

		err := p.Cmd.Wait()

		exitCode := 0
		state := StateExited
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
			} else {
				exitCode = -1
			}
		}

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()
		p.exitCode.Store(int32(exitCode))
		p.state.Store(int32(state))
		close(p.done)
	})
	return p.ExitError()
}

// Runtime returns how long the process has been running.
func (p *Process) Runtime() time.Duration {
	if p.Started.IsZero() {
		return 0
	}
	return time.Since(p.Started)
}

// Sentinel errors for process package.
var (
	// ErrProcessNotStarted is returned when operations require a started process.
	ErrProcessNotStarted = errors.New("process not started")

	// ErrProcessAlreadyStarted is returned when trying to start an already running process.
	ErrProcessAlreadyStarted = errors.New("process already started")
)
