package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"github.com/lehigh-university-libraries/artgrid/internal/config"
)

// Setup builds the process logger: tinted text or JSON on w, plus Fluent Bit
// when enabled. The returned close func flushes and disconnects Fluent Bit.
func Setup(w io.Writer, logCfg config.LogConfig, fluentCfg config.FluentBitConfig) (*slog.Logger, func() error, error) {
	if w == nil {
		w = os.Stderr
	}
	level := ParseLevel(logCfg.Level)

	var handler slog.Handler
	switch logCfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	closer := func() error { return nil }
	if fluentCfg.Enabled {
		client, err := fluent.New(fluent.Config{
			FluentHost: fluentCfg.Host,
			FluentPort: fluentCfg.Port,
			TagPrefix:  fluentCfg.Tag,
			Async:      true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		handler = NewFanout(handler, NewFluentHandler(client, level))
		closer = client.Close
	}

	return slog.New(handler), closer, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fanout sends every record to all of its handlers
type Fanout struct {
	handlers []slog.Handler
}

func NewFanout(handlers ...slog.Handler) *Fanout {
	return &Fanout{handlers: handlers}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &Fanout{handlers: handlers}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &Fanout{handlers: handlers}
}
