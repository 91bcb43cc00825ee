package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goflash/serve"
)

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	a := serve.New()
	a.Use(RequestID())
	var inCtx string
	a.GET("/", func(c serve.Ctx) error {
		inCtx, _ = RequestIDFromContext(c.Context())
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	hdr := rec.Header().Get("X-Request-ID")
	if hdr == "" {
		t.Fatal("expected generated X-Request-ID header")
	}
	if inCtx != hdr {
		t.Fatalf("context id %q != header id %q", inCtx, hdr)
	}
}

func TestRequestIDEchoedWhenPresent(t *testing.T) {
	a := serve.New()
	a.Use(RequestID())
	a.GET("/", func(c serve.Ctx) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	a.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Fatalf("got %q", got)
	}
}

func TestRequestIDCustomHeader(t *testing.T) {
	a := serve.New()
	a.Use(RequestID(RequestIDConfig{Header: "X-Trace"}))
	a.GET("/", func(c serve.Ctx) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Trace") == "" {
		t.Fatal("expected id in custom header")
	}
}

func TestRequestIDCustomGenerator(t *testing.T) {
	a := serve.New()
	a.Use(RequestID(RequestIDConfig{Generator: func() string { return "fixed-id" }}))
	a.GET("/", func(c serve.Ctx) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("got %q, want the generator's id", got)
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if _, ok := RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Fatal("expected no id in a bare context")
	}
}
