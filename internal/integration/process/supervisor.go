package process

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Supervisor tracks the child processes started by an invocation so they
// can be killed if the invocation is abandoned.
//
// Supervisor is safe for concurrent use.
type Supervisor struct {
	mu        sync.RWMutex
	processes map[string]*Process

	closed atomic.Bool

	// maxProcesses limits the number of concurrent processes (0 = unlimited)
	maxProcesses int
}

// SupervisorOption configures a Supervisor instance.
type SupervisorOption func(*Supervisor)

// WithMaxProcesses sets the maximum number of concurrent processes.
func WithMaxProcesses(max int) SupervisorOption {
	return func(s *Supervisor) {
		s.maxProcesses = max
	}
}

// NewSupervisor creates a new process supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start starts cmd under a fresh ID. Stdin and stdout are piped unless
// already configured.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSupervisorShutdown
	}
	if s.maxProcesses > 0 && len(s.processes) >= s.maxProcesses {
		return nil, fmt.Errorf("process limit reached: %d", s.maxProcesses)
	}

	proc := NewProcess(uuid.New().String(), name, cmd)

	var createdPipes []interface{ Close() error }
	cleanupPipes := func() {
		for _, p := range createdPipes {
			_ = p.Close()
		}
	}

	if cmd.Stdin == nil {
		stdinPipe, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("create stdin pipe: %w", err)
		}
		proc.Stdin = stdinPipe
		createdPipes = append(createdPipes, stdinPipe)
	}

	if cmd.Stdout == nil {
		stdoutPipe, err := cmd.StdoutPipe()
		if err != nil {
			cleanupPipes()
			return nil, fmt.Errorf("create stdout pipe: %w", err)
		}
		proc.Stdout = stdoutPipe
		createdPipes = append(createdPipes, stdoutPipe)
	}

	if err := proc.start(); err != nil {
		cleanupPipes()
		return nil, err
	}

	s.processes[proc.ID] = proc
	go s.untrackOnExit(proc)

	return proc, nil
}

func (s *Supervisor) untrackOnExit(proc *Process) {
	<-proc.Done()
	s.mu.Lock()
	delete(s.processes, proc.ID)
	s.mu.Unlock()
}

// Get returns a process by ID, or nil.
func (s *Supervisor) Get(id string) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processes[id]
}

// Count returns the number of tracked processes.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

func (s *Supervisor) snapshot() []*Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	procs := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		procs = append(procs, p)
	}
	return procs
}

// Shutdown kills every tracked process and reaps it, waiting at most
// timeout for the reaping to finish.
func (s *Supervisor) Shutdown(timeout time.Duration) error {
	if s.closed.Swap(true) {
		return nil
	}

	procs := s.snapshot()
	if len(procs) == 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		for _, p := range procs {
			_ = p.Kill()
			_ = p.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// IsShuttingDown returns true once Shutdown has been called.
func (s *Supervisor) IsShuttingDown() bool {
	return s.closed.Load()
}

// Sentinel errors.
var (
	// ErrSupervisorShutdown is returned when the supervisor is shutting down.
	ErrSupervisorShutdown = errors.New("supervisor is shutting down")

	// ErrShutdownTimeout is returned when processes were not reaped in time.
	ErrShutdownTimeout = errors.New("timed out reaping processes")
)
