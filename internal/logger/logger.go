// Package logger configures zerolog and carries request-scoped fields.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Init configures the global logger. Unknown levels fall back to info.
func Init(level string, pretty bool) {
	initTo(os.Stderr, level, pretty)
}

func initTo(out io.Writer, level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID stores the acting user in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the acting user stored in ctx.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Ctx returns the global logger enriched with the request id, user id and
// trace id found in ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := log.Logger.With()
	if id := RequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := UserID(ctx); id != "" {
		lc = lc.Str("user_id", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		lc = lc.Str("trace_id", sc.TraceID().String())
	}
	l := lc.Logger()
	return &l
}
