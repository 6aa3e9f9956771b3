package userapi

import (
	"context"
	"log/slog"
)

// LogObserver writes one structured log line per event.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an Observer logging to logger, or to the default
// logger when logger is nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger.With("component", "userapi")}
}

// OnRequest logs the method and resolved URL before sending.
func (l *LogObserver) OnRequest(ctx context.Context, call Call) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "api request",
		slog.String("call_id", call.ID),
		slog.String("backend", call.Backend),
		slog.String("operation", call.Operation),
		slog.String("method", call.Method),
		slog.String("url", call.URL),
	)
}

// OnResponse logs the status code and URL of a successful call.
func (l *LogObserver) OnResponse(ctx context.Context, call Call, out Outcome) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "api response",
		slog.String("call_id", call.ID),
		slog.Int("status_code", out.StatusCode),
		slog.String("url", call.URL),
		slog.Float64("duration_ms", float64(out.Elapsed.Microseconds())/1000),
	)
}

// OnError logs the error payload. Client errors are warnings; server and
// transport errors are errors.
func (l *LogObserver) OnError(ctx context.Context, call Call, f Failure) {
	level := slog.LevelError
	if f.StatusCode >= 400 && f.StatusCode < 500 {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("call_id", call.ID),
		slog.String("method", call.Method),
		slog.String("url", call.URL),
		slog.String("error", f.Payload),
		slog.Float64("duration_ms", float64(f.Elapsed.Microseconds())/1000),
	}
	if f.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status_code", f.StatusCode))
	}

	l.logger.LogAttrs(ctx, level, "api error", attrs...)
}
