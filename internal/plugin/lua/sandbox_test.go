package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Debug(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(msg, args...))
}

func TestSandboxRemovesLoaders(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	for _, name := range dangerousFuncs {
		if !state.sandbox.IsRemoved(name) {
			t.Errorf("expected %s to be removed", name)
		}
	}

	if err := state.DoString(`dofile("/etc/passwd")`); err == nil {
		t.Error("expected error calling dofile")
	}
	if err := state.DoString(`load("return 1")`); err == nil {
		t.Error("expected error calling load")
	}
}

func TestSandboxPrint(t *testing.T) {
	logger := &recordingLogger{}
	state, err := NewState(WithLogger(logger))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(logger.lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(logger.lines))
	}
	if logger.lines[0] != "lua: hello\t42" {
		t.Errorf("expected %q, got %q", "lua: hello\t42", logger.lines[0])
	}
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestKeyScript(t *testing.T) {
	path := writeScript(t, `
		function key(s)
			if s == "fail" then error("bad input") end
			if s == "nil" then return nil end
			if s == "num" then return 12 end
			return (s:gsub("^v", ""))
		end
	`)
	ks, err := LoadKeyScript(path)
	if err != nil {
		t.Fatalf("LoadKeyScript() error = %v", err)
	}
	defer ks.Close()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "v1.2", want: "1.2"},
		{in: "1.2", want: "1.2"},
		{in: "num", want: "12"},
		{in: "fail", wantErr: true},
		{in: "nil", wantErr: true},
		{in: "after", want: "after"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ks.Key(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Key(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadKeyScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "missing key", src: `function other(s) return s end`, want: "not found"},
		{name: "key not a function", src: `key = "x"`, want: "not found"},
		{name: "syntax error", src: `function key(s`, want: "loading key script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyScript(writeScript(t, tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadKeyScript(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}
