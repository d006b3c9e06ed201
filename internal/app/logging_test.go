package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/selkit/internal/failure"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLogLevel('%s') error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, got, tt.expected)
		}
	}

	if _, err := ParseLogLevel("verbose"); failure.KindOf(err) != failure.KindUsage {
		t.Errorf("expected usage error for unknown level, got %v", err)
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test: debug message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if n := strings.Count(output, "\n"); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected debug and info to be filtered out, got: %s", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected warn and error in output, got: %s", output)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("formatted %s %d", "test", 42)
	if !strings.Contains(buf.String(), "formatted test 42") {
		t.Errorf("expected formatted message, got: %s", buf.String())
	}

	// Without args the message is written verbatim.
	buf.Reset()
	logger.Info("100%")
	if !strings.Contains(buf.String(), "100%\n") {
		t.Errorf("expected verbatim message, got: %s", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithFields(map[string]any{"b": 2, "a": "x"}).WithComponent("kak").Info("test")

	if !strings.Contains(buf.String(), "test {a=x, b=2, component=kak}") {
		t.Errorf("expected sorted fields, got: %s", buf.String())
	}

	// The parent is unchanged.
	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "{") {
		t.Errorf("expected no fields on parent, got: %s", buf.String())
	}
}

func TestLogger_SetLevelShared(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := logger.WithComponent("pipe")

	child.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output at error level")
	}

	logger.SetLevel(LogLevelInfo)
	if logger.Level() != LogLevelInfo {
		t.Errorf("expected level INFO, got %s", logger.Level())
	}
	child.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected child to follow parent level")
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf1})

	logger.Info("to buf1")
	logger.SetOutput(&buf2)
	logger.Info("to buf2")

	if !strings.Contains(buf1.String(), "to buf1") || strings.Contains(buf1.String(), "to buf2") {
		t.Errorf("unexpected buf1 content: %s", buf1.String())
	}
	if !strings.Contains(buf2.String(), "to buf2") {
		t.Errorf("unexpected buf2 content: %s", buf2.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Disable()
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}

	logger.Enable()
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected output when enabled")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.WithComponent("x").Error("test %d", 1)
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("expected default level INFO, got %d", cfg.Level)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
	if cfg.Prefix != "selkit" {
		t.Errorf("expected prefix 'selkit', got '%s'", cfg.Prefix)
	}
}
