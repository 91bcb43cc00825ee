// Command flashserve runs a static file server over the serve pipeline.
//
// Usage:
//
//	flashserve -config server.yaml
//
// With no -config flag the built-in defaults are used (serve ./public on
// 127.0.0.1:8080).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goflash/serve"
	"github.com/goflash/serve/config"
	"github.com/goflash/serve/middleware"
	"github.com/goflash/serve/staticfile"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	a := serve.New()
	a.SetLogger(logger)
	a.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
	if cfg.Metrics {
		a.Use(middleware.Metrics())
		a.HandleHTTP(http.MethodGet, "/metrics", promhttp.Handler())
	}
	middleware.RegisterHealthCheck(a, middleware.HealthCheckConfig{
		Path:        cfg.HealthPath,
		ServiceName: "flashserve",
	})
	// Installed last so the fallback chain picks up all global middleware.
	staticfile.Register(a, staticfile.New(cfg.Root))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "root", cfg.Root)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
