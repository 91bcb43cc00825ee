package ctx

import (
	"context"
	"log/slog"
)

type loggerContextKey struct{}

// ContextWithLogger returns a new context carrying the provided slog.Logger.
//
// The pipeline injects the application logger into every request context, so
// middleware can enrich it with request-scoped fields (request id, route, ...)
// and handlers can retrieve it later without threading a logger argument
// through every call.
//
// In a handler:
//
//	func Show(c ctx.Ctx) error {
//		l := ctx.LoggerFromContext(c.Context())
//		l.Info("handling request", "path", c.Path())
//		return c.String(200, "ok")
//	}
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// LoggerFromContext returns a slog.Logger from the context, or slog.Default if
// none is found. This ensures handlers and middleware can always log even if a
// request-scoped logger was not injected.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if v := ctx.Value(loggerContextKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
