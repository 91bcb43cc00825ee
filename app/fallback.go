package app

import (
	"net/http"
)

// Fallback installs h as the terminal handler for requests that match no
// registered route. Global middleware (plus any mws given here) wraps h the
// same way it wraps route handlers, so logging, recovery, and metrics still
// observe fallback traffic.
//
// This is the natural mount point for handlers that decide per request whether
// they can respond, such as a static file handler that defers unknown paths.
//
// Example:
//
//	a := app.New()
//	a.GET("/healthz", Health)
//	a.Fallback(func(c app.Ctx) error { return c.NotFound() })
//
// Global middleware is captured at the time Fallback is called; register
// middleware with Use before installing the fallback.
func (a *DefaultApp) Fallback(h Handler, mws ...Middleware) {
	final := a.compose(h, mws...)
	a.SetNotFoundHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.dispatch(final, w, r, nil, "")
	}))
}
