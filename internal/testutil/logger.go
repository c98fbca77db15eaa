// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// CaptureHandler records log records so tests can assert on them.
type CaptureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCaptureLogger returns a logger backed by a CaptureHandler.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{}
	return slog.New(h), h
}

func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *CaptureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Record, len(h.records))
	copy(out, h.records)
	return out
}

// Messages returns the captured record messages in order.
func (h *CaptureHandler) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := make([]string, 0, len(h.records))
	for _, r := range h.records {
		msgs = append(msgs, r.Message)
	}
	return msgs
}
