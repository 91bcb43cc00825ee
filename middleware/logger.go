package middleware

import (
	"time"

	"github.com/goflash/serve"
	"github.com/goflash/serve/ctx"
	"github.com/goflash/serve/staticfile"
)

// Logger returns middleware that logs each request using slog, including
// method, path, status, duration, response size, remote address, and user
// agent. The logger is taken from the request context or app, and is enriched
// with a request ID and the static handler's disposition when present.
func Logger() serve.Middleware {
	return func(next serve.Handler) serve.Handler {
		return func(c serve.Ctx) error {
			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			status := c.StatusCode()
			if status == 0 {
				status = 200
			}

			ua, remote := "", ""
			if r := c.Request(); r != nil {
				ua = r.UserAgent()
				remote = r.RemoteAddr
			}

			l := ctx.LoggerFromContext(c.Context())

			attrs := []any{
				"method", c.Method(),
				"path", c.Path(),
				"route", c.Route(),
				"status", status,
				"duration_ms", float64(dur.Microseconds()) / 1000.0,
				"bytes", c.BytesWritten(),
				"remote", remote,
				"user_agent", ua,
			}

			// optional enrichments
			if rid, ok := RequestIDFromContext(c.Context()); ok {
				attrs = append(attrs, "request_id", rid)
			}
			if outcome, ok := staticfile.Outcome(c); ok {
				attrs = append(attrs, "outcome", outcome)
			}

			l.Info("request", attrs...)
			return err
		}
	}
}
