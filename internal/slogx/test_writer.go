package slogx

import (
	"log/slog"
	"testing"
)

// TestWriter forwards log lines to t.Logf.
type TestWriter struct {
	t testing.TB
}

func (w *TestWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.t.Logf("%s", p)
	return n, nil
}

// NewTestLogger returns a debug-level text logger writing through t, without
// timestamps so output stays stable.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(ContextHandler{Handler: slog.NewTextHandler(&TestWriter{t: t}, opts)})
}
