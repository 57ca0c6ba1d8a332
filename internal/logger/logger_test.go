package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects output for the duration of a test.
func capture(t *testing.T, l Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, LevelWarn)

	if IsVerbose() {
		t.Error("expected verbose to be false by default")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("resolved %s", "course.yaml")

	if got := buf.String(); got != "[DEBUG] resolved course.yaml\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debug("hidden")
	Info("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarn_Default(t *testing.T) {
	buf := capture(t, LevelWarn)

	Warn("module %d skipped", 7)

	if got := buf.String(); got != "[WARN] module 7 skipped\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}

func TestQuiet(t *testing.T) {
	buf := capture(t, LevelQuiet)

	Warn("hidden")
	Debug("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, LevelDebug)

	Section("Upload")

	if got := buf.String(); got != "\n=== Upload ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestInfo(t *testing.T) {
	buf := capture(t, LevelInfo)

	Info("uploaded %d modules", 3)
	Debug("hidden")

	if got := buf.String(); got != "[INFO] uploaded 3 modules\n" {
		t.Errorf("unexpected info output: %q", got)
	}
}

func TestTimed(t *testing.T) {
	buf := capture(t, LevelDebug)

	Timed("resolve")()

	if got := buf.String(); !strings.HasPrefix(got, "[DEBUG] resolve took ") {
		t.Errorf("unexpected timed output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, LevelWarn)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		i := i
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
