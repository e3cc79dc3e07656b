package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("dropped")
	l.Info("dropped too")
	l.Warn("kept")
	l.Error("also kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("output contains filtered message:\n%s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "kept") {
		t.Errorf("warn line missing:\n%s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("error line missing:\n%s", out)
	}
}

func TestLoggerWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	l.WithPrefix("dataset").Info("loaded %d rows", 3)

	out := buf.String()
	if !strings.Contains(out, "dataset: loaded 3 rows") {
		t.Errorf("prefixed line = %q, want component tag before message", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("level tag missing: %q", out)
	}
}
