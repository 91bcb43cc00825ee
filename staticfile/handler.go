// Package staticfile serves regular files from beneath a single root
// directory as a stage in a serve pipeline.
//
// For each GET or HEAD request the handler derives a candidate relative path
// from the request URL, percent-decodes it, validates that it cannot escape
// the root, and probes the filesystem once. A resolvable regular file is
// streamed to the client; anything else is passed to the next handler in the
// pipeline, so other routes or a terminal 404 can claim the request.
package staticfile

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goflash/serve"
	"github.com/goflash/serve/ctx"
)

// method is the enumerated request method the handler dispatches on.
// Anything that is not GET or HEAD is ineligible for file serving.
type method int

const (
	methodGet method = iota
	methodHead
	methodOther
)

func methodOf(s string) method {
	switch s {
	case http.MethodGet:
		return methodGet
	case http.MethodHead:
		return methodHead
	default:
		return methodOther
	}
}

// Handler maps request paths to files beneath a root directory.
//
// The root is fixed at construction and never modified afterwards, so a single
// Handler is safe for use by any number of concurrent requests. No state is
// carried between invocations and no filesystem results are cached; each
// request performs one independent metadata probe.
type Handler struct {
	root string
}

// New creates a handler that serves files from within the given root
// directory. The file to serve is determined by combining the requested URL
// path with root.
//
// Example:
//
//	a := serve.New()
//	staticfile.Register(a, staticfile.New("/path/to/serve"))
func New(root string) *Handler {
	return &Handler{root: root}
}

// Root returns the configured root directory.
func (h *Handler) Root() string { return h.root }

// outcomeKind tags the single resolution outcome produced per request.
type outcomeKind int

const (
	outcomePass outcomeKind = iota // defer to the next handler
	outcomeServe                   // stream the resolved file
	outcomeReject                  // terminal client error
)

type outcome struct {
	kind    outcomeKind
	path    string // absolute file path, set for outcomeServe
	status  int    // HTTP status, set for outcomeReject
	message string // response body, set for outcomeReject
}

func pass() outcome              { return outcome{kind: outcomePass} }
func servePath(p string) outcome { return outcome{kind: outcomeServe, path: p} }

func reject(msg string) outcome {
	return outcome{kind: outcomeReject, status: http.StatusBadRequest, message: msg}
}

// resolve classifies one request against the root directory. It performs at
// most one filesystem probe and produces exactly one outcome.
func (h *Handler) resolve(c serve.Ctx) outcome {
	switch methodOf(c.Method()) {
	case methodGet, methodHead:
	default:
		return pass()
	}

	rel, ok := extractPath(rawRequestPath(c))
	if !ok {
		return pass()
	}
	decoded, err := percentDecode(rel)
	if err != nil {
		return reject(err.Error())
	}
	return h.withFile(c, decoded)
}

// rawRequestPath returns the request URL path with percent-escapes intact and
// the query already excluded, or "" when the request carries no usable URL.
// net/http pre-decodes URL.Path, so the escaped form is recovered from
// RawPath when the two differ.
func rawRequestPath(c serve.Ctx) string {
	r := c.Request()
	if r == nil || r.URL == nil {
		return ""
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.EscapedPath()
}

// extractPath derives the candidate relative path from the request URL path.
// The root path "/" maps to index.html; any other path has its single leading
// slash stripped. An empty path is not applicable and defers to the pipeline.
func extractPath(urlPath string) (string, bool) {
	switch urlPath {
	case "":
		return "", false
	case "/":
		return "index.html", true
	default:
		return urlPath[1:], true
	}
}

// withFile resolves a decoded candidate path against the root and acts on the
// filesystem classification. The path is validated before the filesystem is
// touched; an unsafe path is rejected without any probe.
func (h *Handler) withFile(c serve.Ctx, rel string) outcome {
	if !safePath(rel) {
		return reject(fmt.Sprintf("The path %q was denied access.", rel))
	}

	full := filepath.Join(h.root, filepath.FromSlash(rel))
	fi, err := os.Stat(full)
	switch {
	case err == nil && fi.Mode().IsRegular():
		return servePath(full)
	case err != nil && !os.IsNotExist(err):
		// Permission or I/O failures are not the client's fault and do not
		// prove the file is servable either; log and let the pipeline decide.
		ctx.LoggerFromContext(c.Context()).Debug("stat failed for candidate file",
			"path", full, "error", err)
		return pass()
	default:
		// Absent, or present but not a regular file (e.g. a directory).
		return pass()
	}
}

// Middleware returns pipeline middleware that offers each request to the
// handler before passing control to next. Exactly one response operation runs
// per request: the file is streamed, a 400 is written, or next is called. The
// chosen disposition is recorded on the context for Outcome.
func (h *Handler) Middleware() serve.Middleware {
	return func(next serve.Handler) serve.Handler {
		return func(c serve.Ctx) error {
			o := h.resolve(c)
			switch o.kind {
			case outcomeServe:
				recordOutcome(c, OutcomeServed)
				return c.SendFile(o.path)
			case outcomeReject:
				recordOutcome(c, OutcomeRejected)
				return c.String(o.status, o.message)
			default:
				recordOutcome(c, OutcomePassed)
				return next(c)
			}
		}
	}
}

// Register installs h as the app's fallback stage: every request no explicit
// route claims is offered to the static handler, and requests it passes on
// terminate in a plain 404. Explicit routes (health, metrics, APIs) keep
// priority over file serving.
//
// Example:
//
//	a := serve.New()
//	a.Use(middleware.Logger(), middleware.Recover())
//	staticfile.Register(a, staticfile.New("./public"))
func Register(a serve.App, h *Handler) {
	a.Fallback(h.Middleware()(notFound))
}

func notFound(c serve.Ctx) error { return c.NotFound() }
