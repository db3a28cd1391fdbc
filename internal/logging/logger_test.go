package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	handler := &consoleHandler{writer: writerFunc(func(p []byte) (int, error) {
		sb.Write(p)
		return len(p), nil
	}), level: lvl}
	logger := slog.New(handler)

	logger.Info("organized file", String("dest", "/tmp/out file.pdf"), Int("count", 3))

	out := sb.String()
	if !strings.Contains(out, "INF organized file") {
		t.Fatalf("missing level/message in %q", out)
	}
	if !strings.Contains(out, `dest="/tmp/out file.pdf"`) {
		t.Fatalf("expected quoted value with spaces in %q", out)
	}
	if !strings.Contains(out, "count=3") {
		t.Fatalf("expected int attr in %q", out)
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestWithContextAddsRunID(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	logger := slog.New(&consoleHandler{writer: writerFunc(func(p []byte) (int, error) {
		sb.Write(p)
		return len(p), nil
	}), level: lvl})

	ctx := WithRunID(context.Background(), "run-123")
	WithContext(ctx, logger).Info("hello")

	if !strings.Contains(sb.String(), "run_id=run-123") {
		t.Fatalf("expected run_id field in %q", sb.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("ignored")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("noop logger should be disabled")
	}
}
