package app

import (
	"log/slog"
	"net/http"
)

// App defines the public surface of the pipeline/router, suitable for mocking.
// Implemented by *DefaultApp.
type App interface {
	// Middleware management
	Use(mw ...Middleware)

	// Route registration
	GET(path string, h Handler, mws ...Middleware)
	HEAD(path string, h Handler, mws ...Middleware)
	OPTIONS(path string, h Handler, mws ...Middleware)
	Handle(method, path string, h Handler, mws ...Middleware)

	// Fallback terminal handler for requests no route claims
	Fallback(h Handler, mws ...Middleware)

	// HTTP integration and mounting
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	HandleHTTP(method, path string, h http.Handler)
	Mount(path string, h http.Handler)

	// Logging
	SetLogger(l *slog.Logger)
	Logger() *slog.Logger

	// Error/NotFound/MethodNotAllowed handlers
	SetErrorHandler(h ErrorHandler)
	ErrorHandler() ErrorHandler
	SetNotFoundHandler(h http.Handler)
	NotFoundHandler() http.Handler
	SetMethodNotAllowedHandler(h http.Handler)
	MethodNotAllowedHandler() http.Handler
}
