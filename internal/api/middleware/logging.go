package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

type logContextKey struct{}

// statusRecorder remembers the status written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Logging attaches a request-scoped logger, propagates X-Request-ID and logs the outcome of each request.
// Server errors are logged at Error and client errors at Warn.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()

		correlationID := r.Header.Get(requestIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, correlationID)

		attrs := []any{
			slog.String("correlation_id", correlationID),
			slog.String("http_method", r.Method),
			slog.String("http_path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		}

		// otelhttp sits in front of this middleware, so the span is already started
		if span := trace.SpanContextFromContext(r.Context()); span.IsValid() {
			attrs = append(attrs, slog.String("trace_id", span.TraceID().String()))
		}

		requestLogger := slog.Default().With(attrs...)
		requestLogger.Info("Incoming request")

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(WithLogger(r.Context(), requestLogger)))

		requestLogger.Log(r.Context(), completionLevel(rec.status), "Request Completed",
			slog.Int("http_status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logContextKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logContextKey{}, logger)
}
