package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/sqlchat/sqlchat/internal/config"
)

type ctxKey string

const traceIDKey ctxKey = "trace_id"

// NewLogger builds the process logger. Every record carries the service,
// profile and database backend.
func NewLogger(cfg config.Config, writer io.Writer) *slog.Logger {
	if writer == nil {
		return DiscardLogger()
	}
	opts := &slog.HandlerOptions{Level: cfg.Observability.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(writer, opts)
	if cfg.Observability.LogJSON {
		handler = slog.NewJSONHandler(writer, opts)
	}
	return slog.New(handler).With(
		slog.String("service", cfg.Service.Name),
		slog.String("profile", string(cfg.Profile)),
		slog.String("backend", string(cfg.Database.Backend)),
	)
}

// DiscardLogger is used by components constructed without a logger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LoggerOr returns logger, or a discarding logger when it is nil.
func LoggerOr(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return DiscardLogger()
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	value, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return ""
	}
	return value
}
