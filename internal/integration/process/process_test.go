package process

import (
	"errors"
	"io"
	"os/exec"
	"testing"
	"time"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateCreated, "created"},
		{StateRunning, "running"},
		{StateExited, "exited"},
		{StateKilled, "killed"},
		{State(42), "unknown(42)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, expected %q", tt.state, got, tt.expected)
		}
	}
}

func TestNewProcess(t *testing.T) {
	cmd := exec.Command("echo", "hello")
	proc := NewProcess("test-id", "echo", cmd)

	if proc.ID != "test-id" {
		t.Errorf("expected ID 'test-id', got %q", proc.ID)
	}
	if proc.State() != StateCreated {
		t.Errorf("expected state StateCreated, got %v", proc.State())
	}
	if proc.ExitCode() != -1 {
		t.Errorf("expected exit code -1, got %d", proc.ExitCode())
	}
	if proc.PID() != -1 {
		t.Errorf("expected PID -1 before start, got %d", proc.PID())
	}
	if proc.Runtime() != 0 {
		t.Errorf("expected zero runtime before start, got %v", proc.Runtime())
	}
	if !errors.Is(proc.Kill(), ErrProcessNotStarted) {
		t.Error("expected ErrProcessNotStarted when killing unstarted process")
	}
}

func TestProcess_WaitBeforeStart(t *testing.T) {
	proc := NewProcess("id", "echo", exec.Command("echo"))

	if err := proc.Wait(); !errors.Is(err, ErrProcessNotStarted) {
		t.Errorf("expected ErrProcessNotStarted, got %v", err)
	}
	select {
	case <-proc.Done():
	default:
		t.Error("expected Done to be closed")
	}
}

func TestProcess_StartAndWait(t *testing.T) {
	cmd := exec.Command("echo", "hello")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.Fatal(err)
	}
	proc := NewProcess("id", "echo", cmd)

	if err := proc.start(); err != nil {
		t.Fatalf("failed to start process: %v", err)
	}
	if !errors.Is(proc.start(), ErrProcessAlreadyStarted) {
		t.Error("expected ErrProcessAlreadyStarted on second start")
	}
	if proc.State() != StateRunning {
		t.Errorf("expected state StateRunning, got %v", proc.State())
	}

	out, _ := io.ReadAll(stdout)
	if string(out) != "hello\n" {
		t.Errorf("unexpected output %q", out)
	}

	if err := proc.Wait(); err != nil {
		t.Errorf("unexpected exit error: %v", err)
	}
	if proc.State() != StateExited || proc.ExitCode() != 0 {
		t.Errorf("expected clean exit, got %v/%d", proc.State(), proc.ExitCode())
	}
	// Repeated waits return the first result.
	if err := proc.Wait(); err != nil {
		t.Errorf("unexpected exit error on second wait: %v", err)
	}
}

func TestProcess_ExitCode(t *testing.T) {
	proc := NewProcess("id", "sh", exec.Command("sh", "-c", "exit 3"))
	if err := proc.start(); err != nil {
		t.Fatal(err)
	}

	if err := proc.Wait(); err == nil {
		t.Error("expected exit error")
	}
	if proc.ExitCode() != 3 {
		t.Errorf("expected exit code 3, got %d", proc.ExitCode())
	}
}

func TestProcess_Kill(t *testing.T) {
	proc := NewProcess("id", "sleep", exec.Command("sleep", "10"))
	if err := proc.start(); err != nil {
		t.Fatal(err)
	}

	if err := proc.Kill(); err != nil {
		t.Fatalf("kill failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_ = proc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process was not reaped after kill")
	}
	if proc.State() != StateKilled {
		t.Errorf("expected StateKilled, got %v", proc.State())
	}
}
