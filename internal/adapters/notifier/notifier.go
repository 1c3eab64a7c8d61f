package notifier

// Package notifier renders user-visible notices to a log or a terminal.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

var (
	_ ports.Notifier = (*Log)(nil)
	_ ports.Notifier = (*Writer)(nil)
)

// Log records notices as structured log lines. Used by the HTTP server, where
// there is no person watching the output.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a log notifier. A nil logger uses slog.Default.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger.With("component", "notifier")}
}

func (l *Log) Notify(ctx context.Context, n model.Notice) {
	level := slog.LevelInfo
	if n.Variant == model.NoticeDestructive {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, n.Title, "description", n.Description, "variant", string(n.Variant))
}

// Writer prints notices for a person at a terminal. Destructive notices go to
// the error writer when one is set.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewWriter creates a terminal notifier.
func NewWriter(out, errOut io.Writer) *Writer {
	if errOut == nil {
		errOut = out
	}
	return &Writer{out: out, err: errOut}
}

func (w *Writer) Notify(_ context.Context, n model.Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dst, prefix := w.out, ""
	if n.Variant == model.NoticeDestructive {
		dst, prefix = w.err, "error: "
	}
	if n.Description == "" {
		_, _ = fmt.Fprintf(dst, "%s%s\n", prefix, n.Title)
		return
	}
	_, _ = fmt.Fprintf(dst, "%s%s: %s\n", prefix, n.Title, n.Description)
}
