// Package testutil routes slog output into tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, _ := NewRecordingLogger(t)
	return logger
}

// Records holds every line a recording logger wrote. Safe for concurrent use,
// since banks log from worker goroutines.
type Records struct {
	mu    sync.Mutex
	lines []string
}

// Lines returns a copy of the recorded lines.
func (r *Records) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Contains reports whether any recorded line contains substr.
func (r *Records) Contains(substr string) bool {
	for _, line := range r.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// NewRecordingLogger is NewTestLogger that also keeps each line for assertions.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Records) {
	t.Helper()
	rec := &Records{}
	h := slog.NewTextHandler(&testWriter{t: t, rec: rec}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(h), rec
}

type testWriter struct {
	t   testing.TB
	rec *Records
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	line := string(bytes.TrimRight(p, "\n"))

	w.rec.mu.Lock()
	w.rec.lines = append(w.rec.lines, line)
	w.rec.mu.Unlock()

	w.t.Log(line)
	return len(p), nil
}
