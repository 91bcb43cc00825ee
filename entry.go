package serve

import (
	"github.com/goflash/serve/app"
	"github.com/goflash/serve/ctx"
)

// App is the serving pipeline/router. Implements http.Handler. Re-exported from app.App.
type App = app.App

// Handler is the function signature for pipeline handlers and middleware (after composition).
// Re-exported from app.Handler.
type Handler = app.Handler

// Middleware transforms a Handler, enabling composition (e.g., logging, tracing).
// Re-exported from app.Middleware.
type Middleware = app.Middleware

// ErrorHandler handles errors returned from handlers. Re-exported from app.ErrorHandler.
type ErrorHandler = app.ErrorHandler

// Ctx is the request context, re-exported for convenience.
type Ctx = ctx.Ctx

// New creates a new App with sensible defaults. Re-exported from app.New.
func New() App { return app.New() }
