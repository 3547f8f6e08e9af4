package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"diarbench/internal/config"
)

func TestConsoleOutputShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("processing", slog.String("component", "batch"), slog.String("rec_id", "rec 1"), slog.Float64("der", 0.25))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO batch: processing") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, `rec_id="rec 1"`) {
		t.Fatalf("expected quoted attr in %q", line)
	}
	if !strings.Contains(line, "der=0.25") {
		t.Fatalf("expected float attr in %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNewRunLoggerWritesTimestampedFile(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	start := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	logger, path, closeFn, err := NewRunLogger(&cfg, start)
	if err != nil {
		t.Fatalf("NewRunLogger: %v", err)
	}
	logger.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if filepath.Base(path) != "diarbench_20260304_050607.log" {
		t.Fatalf("unexpected log file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log record missing from file: %q", string(data))
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
