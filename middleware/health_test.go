package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheckHealthyByDefault(t *testing.T) {
	a := newQuietApp()
	RegisterHealthCheck(a)

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" || body["service"] != "serve" {
		t.Fatalf("body = %v", body)
	}
}

func TestHealthCheckUnhealthy(t *testing.T) {
	a := newQuietApp()
	RegisterHealthCheck(a, HealthCheckConfig{
		Path:            "/health",
		ServiceName:     "files",
		HealthCheckFunc: func() error { return errors.New("disk gone") },
	})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "unhealthy" || body["error"] != "disk gone" {
		t.Fatalf("body = %v", body)
	}
}
