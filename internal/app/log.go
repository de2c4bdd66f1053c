package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ttHandler is a slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<runID>\t<message>\t<key=value ...>
type ttHandler struct {
	w     io.Writer
	runID string
	attrs []slog.Attr
}

func (h *ttHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *ttHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	if _, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, r.Level, h.runID, r.Message); err != nil {
		return err
	}
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err := fmt.Fprintln(h.w)
	return err
}

func (h *ttHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ttHandler{
		w:     h.w,
		runID: h.runID,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *ttHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to both logDir/tt.log and stderr.
// The returned file must be closed by the caller.
func newLogger(logDir string, runID string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logDir, "tt.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(&ttHandler{w: io.MultiWriter(f, os.Stderr), runID: runID}), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the tt.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
