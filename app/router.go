package app

import (
	"net/http"

	"github.com/goflash/serve/ctx"
	"github.com/julienschmidt/httprouter"
)

// GET registers a handler for HTTP GET requests on the given path.
// Optionally accepts route-specific middleware.
//
// Example:
//
//	a := app.New()
//	a.GET("/healthz", func(c app.Ctx) error { return c.String(http.StatusOK, "ok") })
func (a *DefaultApp) GET(path string, h Handler, mws ...Middleware) {
	a.handle(http.MethodGet, path, h, mws...)
}

// HEAD registers a handler for HTTP HEAD requests on the given path.
// Optionally accepts route-specific middleware.
// Mirrors GET semantics but does not write a response body.
func (a *DefaultApp) HEAD(path string, h Handler, mws ...Middleware) {
	a.handle(http.MethodHead, path, h, mws...)
}

// OPTIONS registers a handler for HTTP OPTIONS requests on the given path.
// Optionally accepts route-specific middleware.
func (a *DefaultApp) OPTIONS(path string, h Handler, mws ...Middleware) {
	a.handle(http.MethodOptions, path, h, mws...)
}

// Handle registers a handler for an arbitrary HTTP method on the given path.
// Optionally accepts route-specific middleware.
//
// Example:
//
//	a.Handle("PROPFIND", "/dav/resource", HandlePropfind)
func (a *DefaultApp) Handle(method, path string, h Handler, mws ...Middleware) {
	a.handle(method, path, h, mws...)
}

// handle is the internal route registration and handler composition method.
// It composes the middleware chain (route-specific then global), adapts the
// handler to the httprouter signature, injects the logger, and manages context
// pooling.
//
// Middleware composition order:
//   - Route-specific middleware wraps the handler (right-to-left)
//   - Then global middleware wraps that (right-to-left)
//
// The resulting call order at runtime is:
// global (left-to-right) -> route (left-to-right) -> handler.
func (a *DefaultApp) handle(method, path string, h Handler, mws ...Middleware) {
	final := a.compose(h, mws...)

	pattern := path
	a.router.Handle(method, path, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		a.dispatch(final, w, r, ps, pattern)
	})
}

// compose wraps h with route-specific middleware, then global middleware,
// right-to-left so the leftmost middleware runs first. Each layer is a direct
// function call, not a slice or struct, keeping the chain allocation-free.
func (a *DefaultApp) compose(h Handler, mws ...Middleware) Handler {
	final := h
	for i := len(mws) - 1; i >= 0; i-- {
		final = mws[i](final)
	}
	for i := len(a.middleware) - 1; i >= 0; i-- {
		final = a.middleware[i](final)
	}
	return final
}

// dispatch runs a composed handler for one request, managing the context
// lifecycle:
//   - Inject the app logger into the request context
//   - Acquire a *ctx.DefaultContext from the pool and reset it
//   - Call the composed handler; on error, invoke the configured ErrorHandler
//   - Finish() and return the context to the pool
func (a *DefaultApp) dispatch(final Handler, w http.ResponseWriter, r *http.Request, ps httprouter.Params, route string) {
	r = r.WithContext(ctx.ContextWithLogger(r.Context(), a.Logger()))
	concrete := a.pool.Get().(*ctx.DefaultContext)
	concrete.Reset(w, r, ps, route)
	if err := final(concrete); err != nil {
		a.ErrorHandler()(concrete, err)
	}
	concrete.Finish()
	a.pool.Put(concrete)
}
