package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/goflash/serve"
	"github.com/goflash/serve/ctx"
)

// RecoverConfig configures the panic recovery middleware.
//
// EnableStack controls whether stack traces are logged (keep disabled in
// production). OnPanic is called when a panic occurs, useful for custom
// logging or alerting. ErrorResponse allows customizing the error response
// sent to clients; the default is a generic 500 with no panic details.
type RecoverConfig struct {
	EnableStack   bool                       // whether to log stack traces
	OnPanic       func(serve.Ctx, any)       // optional callback when panic occurs
	ErrorResponse func(serve.Ctx, any) error // optional custom error response
}

// Recover returns middleware that recovers from panics in handlers, logs
// them, and answers the client with a generic HTTP 500. Panic values and
// stack traces are never exposed to clients.
//
// Place it early in the chain, typically right after RequestID and Logger:
//
//	a.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
func Recover(cfgs ...RecoverConfig) serve.Middleware {
	cfg := RecoverConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(next serve.Handler) serve.Handler {
		return func(c serve.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if cfg.OnPanic != nil {
						func() {
							// a panicking callback must not take down the request
							defer func() { _ = recover() }()
							cfg.OnPanic(c, r)
						}()
					} else {
						l := ctx.LoggerFromContext(c.Context())
						attrs := []any{"error", r, "method", c.Method(), "path", c.Path()}
						if cfg.EnableStack {
							attrs = append(attrs, "stack", string(debug.Stack()))
						}
						l.Error("panic recovered", attrs...)
					}

					if cfg.ErrorResponse != nil {
						err = cfg.ErrorResponse(c, r)
						return
					}

					c.Header("X-Content-Type-Options", "nosniff")
					_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()
			return next(c)
		}
	}
}
