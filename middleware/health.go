package middleware

import (
	"net/http"
	"time"

	"github.com/goflash/serve"
	"github.com/goflash/serve/ctx"
)

// HealthCheckFunc performs a health check and returns an error if unhealthy.
// A nil return means the service is considered healthy.
type HealthCheckFunc func() error

// HealthCheckConfig configures the health check endpoint.
type HealthCheckConfig struct {
	// Path is the endpoint path (e.g., "/health", "/healthz").
	// Defaults to "/healthz" if not provided.
	Path string
	// HealthCheckFunc performs the actual check. If nil, the endpoint always
	// reports healthy.
	HealthCheckFunc HealthCheckFunc
	// ServiceName is included in the response. Defaults to "serve".
	ServiceName string
}

// RegisterHealthCheck registers a health check endpoint on the given app.
// The endpoint returns a JSON document with the health status, the service
// name and a timestamp; failures answer 503 and are logged through the
// request-scoped logger.
func RegisterHealthCheck(a serve.App, cfgs ...HealthCheckConfig) {
	cfg := HealthCheckConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Path == "" {
		cfg.Path = "/healthz"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "serve"
	}

	a.GET(cfg.Path, func(c serve.Ctx) error {
		var err error
		if cfg.HealthCheckFunc != nil {
			err = cfg.HealthCheckFunc()
		}

		status := "healthy"
		httpStatus := http.StatusOK
		if err != nil {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			ctx.LoggerFromContext(c.Context()).Error("health check failed", "error", err)
		}

		response := map[string]any{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   cfg.ServiceName,
		}
		if err != nil {
			response["error"] = err.Error()
		}
		return c.Status(httpStatus).JSON(response)
	})
}
