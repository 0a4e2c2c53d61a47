package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"TRACE":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", in, got, want)
		}
	}
}

func TestRunLogWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "preclear.run.log")
	logger, cleanup, err := New(Options{Level: "info", RunLogPath: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("report.stored", zap.String("report_id", "abc"), zap.Int("final_risk", 42))
	logger.Debug("dropped at info level")
	cleanup()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 1 {
		t.Fatalf("run log lines=%d want=1: %q", len(lines), raw)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("run log line is not JSON: %v", err)
	}
	if entry["event"] != "report.stored" || entry["report_id"] != "abc" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", entry)
	}
}

func TestNewWithoutRunLog(t *testing.T) {
	logger, cleanup, err := New(Options{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
}
