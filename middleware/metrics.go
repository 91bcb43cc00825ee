package middleware

import (
	"strconv"
	"time"

	"github.com/goflash/serve"
	"github.com/goflash/serve/staticfile"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace prefixes all metric names. Defaults to "serve".
	Namespace string
	// Registerer receives the collectors. Defaults to prometheus.DefaultRegisterer,
	// which feeds the stock promhttp.Handler(); tests can pass their own registry.
	Registerer prometheus.Registerer
}

// Metrics returns middleware that records per-request Prometheus metrics:
// a request counter partitioned by method and status code, a request duration
// histogram, and a counter of files streamed by the static handler.
//
// Expose the metrics by mounting the promhttp handler on the app:
//
//	a.Use(middleware.Metrics())
//	a.HandleHTTP(http.MethodGet, "/metrics", promhttp.Handler())
func Metrics(cfgs ...MetricsConfig) serve.Middleware {
	cfg := MetricsConfig{Namespace: "serve", Registerer: prometheus.DefaultRegisterer}
	if len(cfgs) > 0 {
		if cfgs[0].Namespace != "" {
			cfg.Namespace = cfgs[0].Namespace
		}
		if cfgs[0].Registerer != nil {
			cfg.Registerer = cfgs[0].Registerer
		}
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests processed by the pipeline.",
	}, []string{"code", "method"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latencies in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	filesServed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "files_served_total",
		Help:      "Total number of regular files streamed by the static handler.",
	})

	cfg.Registerer.MustRegister(requests, duration, filesServed)

	return func(next serve.Handler) serve.Handler {
		return func(c serve.Ctx) error {
			start := time.Now()
			err := next(c)

			status := c.StatusCode()
			if status == 0 {
				status = 200
			}
			requests.WithLabelValues(strconv.Itoa(status), c.Method()).Inc()
			duration.WithLabelValues(c.Method()).Observe(time.Since(start).Seconds())
			if outcome, ok := staticfile.Outcome(c); ok && outcome == staticfile.OutcomeServed {
				filesServed.Inc()
			}
			return err
		}
	}
}
