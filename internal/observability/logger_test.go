package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Name: "chartsense"}, zapcore.AddSync(&buf))
	logger.Debug("dispatch", zap.String("event", "pointermove"))
	_ = logger.Sync()

	line := strings.TrimSpace(buf.String())
	if !gjson.Valid(line) {
		t.Fatalf("output is not JSON: %q", line)
	}
	for path, want := range map[string]string{
		"level":  "DEBUG",
		"msg":    "dispatch",
		"logger": "chartsense",
		"event":  "pointermove",
	} {
		if got := gjson.Get(line, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "console", Name: "cli"}, zapcore.AddSync(&buf))
	logger.Info("replayed")
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "replayed") {
		t.Errorf("console output = %q", out)
	}
	if !strings.Contains(out, "cli.") {
		t.Errorf("console output %q lacks the logger name", out)
	}
}

func TestNewLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "verbose", Format: "json"}, zapcore.AddSync(&buf))
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at fallback info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartsense.log")
	var console bytes.Buffer
	logger := New(Config{Level: "info", Format: "console", File: path, MaxSize: 1}, zapcore.AddSync(&console))
	logger.Info("to both", zap.Int("steps", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if got := gjson.Get(line, "steps").Int(); got != 3 {
		t.Errorf("file steps = %d, want 3 (line %q)", got, line)
	}
	if !strings.Contains(console.String(), "to both") {
		t.Error("console missing message")
	}
}
