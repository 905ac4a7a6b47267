// Package logger wraps log/slog with a process-wide logger and a
// request-scoped variant carried in the context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Init configures the base logger for the given APP_ENV. Production gets JSON
// output at INFO, everything else human-readable text at DEBUG.
func Init(appEnv string) {
	L = New(os.Stdout, appEnv)
	slog.SetDefault(L)
}

func New(w io.Writer, appEnv string) *slog.Logger {
	switch appEnv {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

type ctxKey struct{}

// WithCtx returns the logger injected by the request logger middleware, or
// the base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return L
}

func Inject(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
