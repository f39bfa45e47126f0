package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
)

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("expected color disabled for non-terminal writer")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		logger.LogError("dropped")
	})
}

func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "debug")

	logger.LogInfo("removing 'part.prt.1'")

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] removing 'part.prt.1'\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected format: %q", buf.String())
	}
}

func TestConsoleLoggerConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogWarn("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
}

func TestMultiLogger(t *testing.T) {
	a := &bytes.Buffer{}
	b := &bytes.Buffer{}
	multi := NewMultiLogger(NewConsoleLogger(a, "info"), nil, NewConsoleLogger(b, "error"))

	multi.LogInfo("info line")
	multi.LogError("error line")
	multi.LogDebug("debug line")
	multi.LogWarn("warn line")

	if !strings.Contains(a.String(), "info line") || !strings.Contains(a.String(), "error line") {
		t.Errorf("first logger missing lines: %q", a.String())
	}
	if strings.Contains(b.String(), "info line") {
		t.Errorf("second logger should filter info: %q", b.String())
	}
	if !strings.Contains(b.String(), "error line") {
		t.Errorf("second logger missing error line: %q", b.String())
	}
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.LogDebug("x")
	l.LogInfo("x")
	l.LogWarn("x")
	l.LogError("x")
}
