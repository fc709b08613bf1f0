package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"pipet/internal/config"
)

type recordingWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.WriteString(string(p))
}

func (w *recordingWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestConsoleHandlerRendersAttrs(t *testing.T) {
	out := &recordingWriter{}
	level := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(out, level))

	logger.Info("step invoked", "step", "denoise", "index", 0)

	line := out.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "step invoked") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "step=denoise") || !strings.Contains(line, "index=0") {
		t.Fatalf("attrs missing from console line: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	out := &recordingWriter{}
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	handler := newConsoleHandler(out, level)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	out := &recordingWriter{}
	logger := slog.New(newConsoleHandler(out, new(slog.LevelVar)))
	logger.WithGroup("bucket").With("class", "processing").Info("updated")

	if !strings.Contains(out.String(), "bucket.class=processing") {
		t.Fatalf("group prefix missing: %q", out.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Enabled = false

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	// Must not panic or write anywhere.
	logger.Info("discarded", "at", time.Now())
}
