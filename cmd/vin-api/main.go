// Package main implements the VIN decoding HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/logging"
	"github.com/WessleyAI/wessley-vin/pkg/metrics"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

// Config holds all environment-based configuration.
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
	BatchMax       int
	BatchWorkers   int
}

func loadConfig() (Config, error) {
	rps, err := strconv.ParseFloat(envOr("RATE_LIMIT_RPS", "50"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, err := envInt("RATE_LIMIT_BURST", 100)
	if err != nil {
		return Config{}, err
	}
	batchMax, err := envInt("BATCH_MAX", 100)
	if err != nil {
		return Config{}, err
	}
	workers, err := envInt("BATCH_WORKERS", 8)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:           envOr("PORT", "8080"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		CORSOrigin:     envOr("CORS_ORIGIN", "*"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		BatchMax:       batchMax,
		BatchWorkers:   workers,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	n, err := strconv.Atoi(envOr(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(nil)
	svc := lookup.New(vin.NewDecoder(nil), m, logger, lookup.Options{
		MaxBatch: cfg.BatchMax,
		Workers:  cfg.BatchWorkers,
		Source:   "http",
	})
	limiter := resilience.NewLimiter(resilience.LimiterOpts{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(svc, m, limiter, logger, cfg.CORSOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("vin api starting",
			"port", cfg.Port,
			"manufacturers", len(svc.Catalog().Manufacturers()),
			"batch_max", svc.Options().MaxBatch,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
