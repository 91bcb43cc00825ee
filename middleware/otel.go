package middleware

import (
	"net/http"
	"time"

	"github.com/goflash/serve"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// OTelConfig configures the OpenTelemetry tracing middleware.
//
// All fields are optional; zero values fall back to the global tracer
// provider and propagator, a "METHOD route" span name, and a status mapping
// that marks 5xx responses and handler errors as span errors.
type OTelConfig struct {
	// ServiceName names the tracer and is attached as service.name on spans.
	ServiceName string
	// Tracer overrides the tracer obtained from the global provider.
	Tracer trace.Tracer
	// Propagator overrides the global text map propagator used to extract
	// the parent span context from incoming request headers.
	Propagator propagation.TextMapPropagator
	// SpanName derives the span name per request. An empty return falls back
	// to the default naming.
	SpanName func(serve.Ctx) string
	// Filter skips tracing for matching requests while still running them.
	Filter func(serve.Ctx) bool
	// Attributes supplies per-request attributes.
	Attributes func(serve.Ctx) []attribute.KeyValue
	// ExtraAttributes are attached to every span as-is.
	ExtraAttributes []attribute.KeyValue
	// Status maps the response status and handler error to a span status.
	Status func(code int, err error) (codes.Code, string)
	// RecordDuration attaches the handler duration as an attribute.
	RecordDuration bool
}

// OTel returns tracing middleware with default configuration for the given
// service name. One server span is created per request, parented on any span
// context propagated in the request headers.
//
// Example:
//
//	a := serve.New()
//	a.Use(middleware.OTel("file-server"))
func OTel(service string) serve.Middleware {
	return OTelWithConfig(OTelConfig{ServiceName: service})
}

// OTelWithConfig returns tracing middleware using the provided configuration.
func OTelWithConfig(cfg OTelConfig) serve.Middleware {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(cfg.ServiceName)
	}

	return func(next serve.Handler) serve.Handler {
		return func(c serve.Ctx) error {
			if cfg.Filter != nil && cfg.Filter(c) {
				return next(c)
			}

			prop := cfg.Propagator
			if prop == nil {
				prop = otel.GetTextMapPropagator()
			}

			r := c.Request()
			parent := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			name := ""
			if cfg.SpanName != nil {
				name = cfg.SpanName(c)
			}
			if name == "" {
				if rt := c.Route(); rt != "" {
					name = c.Method() + " " + rt
				} else {
					name = c.Method() + " " + c.Path()
				}
			}

			start := time.Now()
			spanCtx, span := tracer.Start(parent, name, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			c.SetRequest(r.WithContext(spanCtx))

			err := next(c)

			status := c.StatusCode()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.Path()),
				attribute.Int("http.status_code", status),
			}
			if rt := c.Route(); rt != "" {
				attrs = append(attrs, attribute.String("http.route", rt))
			}
			if cfg.ServiceName != "" {
				attrs = append(attrs, attribute.String("service.name", cfg.ServiceName))
			}
			if cfg.Attributes != nil {
				attrs = append(attrs, cfg.Attributes(c)...)
			}
			attrs = append(attrs, cfg.ExtraAttributes...)
			if cfg.RecordDuration {
				attrs = append(attrs, attribute.Float64("http.server.duration_ms",
					float64(time.Since(start).Microseconds())/1000.0))
			}
			span.SetAttributes(attrs...)

			code, desc := defaultSpanStatus(status, err)
			if cfg.Status != nil {
				code, desc = cfg.Status(status, err)
			}
			span.SetStatus(code, desc)
			if err != nil {
				span.RecordError(err)
			}
			return err
		}
	}
}

// defaultSpanStatus marks handler errors and 5xx responses as span errors and
// everything else as OK.
func defaultSpanStatus(status int, err error) (codes.Code, string) {
	if err != nil || status >= http.StatusInternalServerError {
		return codes.Error, http.StatusText(status)
	}
	return codes.Ok, ""
}
