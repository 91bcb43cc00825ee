package ctx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	router "github.com/julienschmidt/httprouter"
)

// Ctx is the request/response context interface exposed to handlers and middleware.
// It is implemented by *DefaultContext and lives in package ctx to avoid adapters
// and import cycles.
//
// A Ctx provides accessors for request data (method, path, params, query) and
// response helpers for writing headers and bodies, including SendFile for
// streaming a file from the local filesystem.
//
// Typical usage inside a handler:
//
//	a.GET("/robots.txt", func(c ctx.Ctx) error {
//	    return c.SendFile("./public/robots.txt")
//	})
//
// Concurrency: Ctx is not safe for concurrent writes to the underlying
// http.ResponseWriter. Use Clone() and swap the writer if responding from
// another goroutine.
type Ctx interface {
	// Request returns the underlying *http.Request associated with this context.
	Request() *http.Request
	// SetRequest replaces the underlying *http.Request on the context.
	// Example: attach a new context value to the request.
	//
	//	ctx := context.WithValue(c.Context(), key, value)
	//	c.SetRequest(c.Request().WithContext(ctx))
	SetRequest(*http.Request)
	// ResponseWriter returns the underlying http.ResponseWriter.
	ResponseWriter() http.ResponseWriter
	// SetResponseWriter replaces the underlying http.ResponseWriter.
	SetResponseWriter(http.ResponseWriter)

	// Context returns the request-scoped context.Context.
	Context() context.Context
	// Method returns the HTTP method (e.g., "GET").
	Method() string
	// Path returns the request URL path as decoded by net/http, query
	// excluded. Percent-escapes have already been resolved; the escaped form
	// is available via Request().URL.
	Path() string
	// Route returns the route pattern (e.g., "/healthz") when available.
	Route() string
	// Param returns a path parameter by name ("" if not present).
	Param(name string) string
	// Query returns a query string parameter by key ("" if not present).
	Query(key string) string

	// Header sets a response header key/value.
	Header(key, value string)
	// Status stages the HTTP status code to be written; returns the Ctx to allow chaining.
	Status(code int) Ctx
	// StatusCode returns the status that will be written (or 200 after header write, or 0 if unset).
	StatusCode() int
	// WroteHeader reports whether the header has already been written to the client.
	WroteHeader() bool
	// BytesWritten returns the number of response body bytes written so far.
	BytesWritten() int

	// JSON serializes v to JSON and writes it with an appropriate Content-Type.
	// If Status() was not set, it defaults to 200.
	JSON(v any) error
	// String writes a text/plain body with the provided status code.
	String(status int, body string) error
	// Send writes raw bytes with a specific status and content type.
	Send(status int, contentType string, b []byte) (int, error)
	// SendFile streams the file at path to the client. The Content-Type is
	// derived from the file extension. For HEAD requests only headers are
	// written; the body is elided.
	SendFile(path string) error

	// Convenience responses
	NotFound(message ...string) error
	BadRequest(message ...string) error
	InternalServerError(message ...string) error
	NoContent() error

	// Get retrieves a value from the request context by key, with optional default.
	Get(key any, def ...any) any
	// Set stores a value into a derived request context and replaces the underlying request.
	Set(key, value any) Ctx

	// Clone returns a shallow copy of the context suitable for use in a separate goroutine.
	Clone() Ctx
}

// DefaultContext is the concrete implementation of Ctx used by the pipeline.
// It wraps the http.ResponseWriter and *http.Request, exposes response helpers,
// and tracks route, status, and response state for each request.
//
// Handlers generally accept the interface type (ctx.Ctx), not *DefaultContext,
// to allow substituting alternative implementations if desired.
type DefaultContext struct {
	w           http.ResponseWriter // underlying response writer
	r           *http.Request       // underlying request
	params      router.Params       // route parameters
	status      int                 // status code to write
	wroteHeader bool                // whether header was written
	wroteBytes  int                 // number of bytes written
	route       string              // route pattern (e.g., /healthz)
}

// Reset prepares the context for a new request. Used internally by the pipeline.
// It swaps in the writer, request, params and route pattern, and clears any
// response state. Libraries and middleware should not need to call Reset.
func (c *DefaultContext) Reset(w http.ResponseWriter, r *http.Request, ps router.Params, route string) {
	c.w = w
	c.r = r
	c.params = ps
	c.status = 0
	c.wroteHeader = false
	c.wroteBytes = 0
	c.route = route
}

// Finish is a hook for context cleanup after request handling. No-op by default.
func (c *DefaultContext) Finish() {
	_ = c
}

// Request returns the underlying *http.Request.
func (c *DefaultContext) Request() *http.Request { return c.r }

// SetRequest replaces the underlying *http.Request.
// Commonly used to attach a derived context:
//
//	ctx := context.WithValue(c.Context(), key, value)
//	c.SetRequest(c.Request().WithContext(ctx))
func (c *DefaultContext) SetRequest(r *http.Request) { c.r = r }

// ResponseWriter returns the underlying http.ResponseWriter.
func (c *DefaultContext) ResponseWriter() http.ResponseWriter { return c.w }

// SetResponseWriter replaces the underlying http.ResponseWriter.
// Rarely needed in application code, but useful for testing or when wrapping
// the writer in middleware.
func (c *DefaultContext) SetResponseWriter(w http.ResponseWriter) { c.w = w }

// WroteHeader reports whether the response header has been written.
// After the header is written, changing headers or status has no effect.
func (c *DefaultContext) WroteHeader() bool { return c.wroteHeader }

// BytesWritten returns the number of response body bytes written so far.
// HEAD responses report 0 since their body is elided.
func (c *DefaultContext) BytesWritten() int { return c.wroteBytes }

// Context returns the request context.Context.
// It is the same as c.Request().Context().
func (c *DefaultContext) Context() context.Context { return c.r.Context() }

// Set stores a value in the request context using the provided key and value.
// It replaces the request with a clone that carries the new context and returns
// the context for chaining.
//
// Note: Prefer using a custom, unexported key type to avoid collisions.
func (c *DefaultContext) Set(key, value any) Ctx {
	ctx := context.WithValue(c.Context(), key, value)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

// Get returns a value from the request context by key.
// If the key is not present (or the stored value is nil), it returns the
// provided default when given (Get(key, def)), otherwise it returns nil.
func (c *DefaultContext) Get(key any, def ...any) any {
	v := c.Context().Value(key)
	if v != nil {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Method returns the HTTP method for the request (e.g., "GET").
func (c *DefaultContext) Method() string { return c.r.Method }

// Path returns the decoded request URL path (without scheme, host, or query).
func (c *DefaultContext) Path() string { return c.r.URL.Path }

// Route returns the route pattern for the current request, if known.
func (c *DefaultContext) Route() string { return c.route }

// Param returns a path parameter by name. Returns "" if not found.
func (c *DefaultContext) Param(name string) string { return c.params.ByName(name) }

// Query returns a query string parameter by key. Returns "" if not found.
func (c *DefaultContext) Query(key string) string { return c.r.URL.Query().Get(key) }

// Status stages the response status code (without writing the header yet).
// Returns the context for chaining.
func (c *DefaultContext) Status(code int) Ctx {
	c.status = code
	return c
}

// StatusCode returns the status code that will be written.
// If not set yet and the header hasn't been written, returns 0. If the header
// has already been written without an explicit status, returns 200.
func (c *DefaultContext) StatusCode() int {
	if c.status != 0 {
		return c.status
	}
	if c.wroteHeader {
		return http.StatusOK
	}
	return 0
}

// Header sets a header on the response.
// Has no effect after the header is written.
func (c *DefaultContext) Header(key, value string) { c.w.Header().Set(key, value) }

var jsonBufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// JSON serializes the provided value as JSON and writes the response.
// If Status() has not been called yet, it defaults to 200 OK.
// Content-Type is set to "application/json; charset=utf-8" and Content-Length
// is calculated.
func (c *DefaultContext) JSON(v any) error {
	buf := jsonBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	enc := json.NewEncoder(buf)
	if err := enc.Encode(v); err != nil {
		jsonBufPool.Put(buf)
		if !c.wroteHeader {
			c.w.WriteHeader(http.StatusInternalServerError)
			c.wroteHeader = true
		}
		return err
	}
	b := buf.Bytes()
	// trim trailing newline added by Encoder
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}

	if !c.wroteHeader {
		if c.status == 0 {
			c.status = http.StatusOK
		}
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Header("Content-Length", strconv.Itoa(len(b)))
		c.w.WriteHeader(c.status)
		c.wroteHeader = true
	}
	_, err := c.w.Write(b)
	c.wroteBytes += len(b)
	buf.Reset()
	jsonBufPool.Put(buf)
	return err
}

// String writes a plain text response with the given status and body.
// Sets Content-Type to "text/plain; charset=utf-8" and Content-Length accordingly.
func (c *DefaultContext) String(status int, body string) error {
	if !c.wroteHeader {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.w.WriteHeader(status)
		c.wroteHeader = true
	}
	n, err := io.WriteString(c.w, body)
	c.wroteBytes += n
	return err
}

// Send writes raw bytes with the given status and content type.
// If contentType is empty, no Content-Type header is set.
func (c *DefaultContext) Send(status int, contentType string, b []byte) (int, error) {
	if !c.wroteHeader {
		if contentType != "" {
			c.Header("Content-Type", contentType)
		}
		c.Header("Content-Length", strconv.Itoa(len(b)))
		c.w.WriteHeader(status)
		c.wroteHeader = true
	}
	n, err := c.w.Write(b)
	c.wroteBytes += n
	return n, err
}

// SendFile streams a file from the local filesystem to the client.
//
// The Content-Type is derived from the file extension, falling back to
// application/octet-stream, and Content-Length is set from the file size.
// For HEAD requests the headers are written and the body is elided, so a HEAD
// response carries the same metadata as the corresponding GET.
//
// SendFile does not serve directories; callers are expected to have resolved
// path to a regular file.
func (c *DefaultContext) SendFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return c.NotFound()
	}

	if !c.wroteHeader {
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Header("Content-Length", strconv.FormatInt(fi.Size(), 10))
		if c.status == 0 {
			c.status = http.StatusOK
		}
		c.w.WriteHeader(c.status)
		c.wroteHeader = true
	}

	if c.r.Method == http.MethodHead {
		return nil
	}

	written, err := io.Copy(c.w, f)
	c.wroteBytes += int(written)
	return err
}

// NotFound sends a 404 Not Found response with optional message.
func (c *DefaultContext) NotFound(message ...string) error {
	msg := "Not Found"
	if len(message) > 0 {
		msg = message[0]
	}
	return c.String(http.StatusNotFound, msg)
}

// BadRequest sends a 400 Bad Request response with optional message.
func (c *DefaultContext) BadRequest(message ...string) error {
	msg := "Bad Request"
	if len(message) > 0 {
		msg = message[0]
	}
	return c.String(http.StatusBadRequest, msg)
}

// InternalServerError sends a 500 Internal Server Error response with optional message.
func (c *DefaultContext) InternalServerError(message ...string) error {
	msg := "Internal Server Error"
	if len(message) > 0 {
		msg = message[0]
	}
	return c.String(http.StatusInternalServerError, msg)
}

// NoContent sends a 204 No Content response.
func (c *DefaultContext) NoContent() error {
	if !c.wroteHeader {
		c.w.WriteHeader(http.StatusNoContent)
		c.wroteHeader = true
	}
	return nil
}

// Clone returns a shallow copy of the context.
// Safe for use across goroutines as long as the ResponseWriter is swapped to a
// concurrency-safe writer if needed.
func (c *DefaultContext) Clone() Ctx { cp := *c; return &cp }
