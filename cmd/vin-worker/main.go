// Package main implements the VIN decode worker: a NATS request/reply
// responder with a gRPC health endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/logging"
	"github.com/WessleyAI/wessley-vin/pkg/metrics"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

// serviceName is the gRPC health service name reported by the worker.
const serviceName = "wessley.vin.Decoder"

const defaultDrainTimeout = 10 * time.Second

// Config holds all environment-based configuration.
type Config struct {
	NATSURL      string
	Subject      string
	Queue        string
	Events       string
	DrainTimeout time.Duration
	HealthAddr   string
	LogLevel     string
	LogFormat    string
	BatchMax     int
	BatchWorkers int
	RateLimitRPS float64
}

func loadConfig() (Config, error) {
	batchMax, err := envInt("BATCH_MAX", 100)
	if err != nil {
		return Config{}, err
	}
	workers, err := envInt("BATCH_WORKERS", 8)
	if err != nil {
		return Config{}, err
	}
	rps, err := strconv.ParseFloat(envOr("RATE_LIMIT_RPS", "0"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	drain, err := time.ParseDuration(envOr("NATS_DRAIN_TIMEOUT", defaultDrainTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("NATS_DRAIN_TIMEOUT: %w", err)
	}
	return Config{
		NATSURL:      envOr("NATS_URL", nats.DefaultURL),
		Subject:      envOr("NATS_SUBJECT", "vin.decode"),
		Queue:        envOr("NATS_QUEUE", "vin-workers"),
		Events:       envOr("NATS_EVENTS_SUBJECT", "vin.decoded"),
		DrainTimeout: drain,
		HealthAddr:   envOr("GRPC_HEALTH_ADDR", ":50051"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		LogFormat:    envOr("LOG_FORMAT", "json"),
		BatchMax:     batchMax,
		BatchWorkers: workers,
		RateLimitRPS: rps,
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("worker exited with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	lis, err := net.Listen("tcp", cfg.HealthAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HealthAddr, err)
	}
	return serve(ctx, cfg, lis, logger)
}

// connect dials NATS with handlers that mirror the connection state into hs.
// The returned channel is closed once the connection is closed for good.
func connect(url string, hs *health.Server, logger *slog.Logger) (*nats.Conn, <-chan struct{}, error) {
	closed := make(chan struct{})
	nc, err := nats.Connect(url,
		nats.Name("vin-worker"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "err", err)
			hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
			hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
		}),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, closed, nil
}

// drain stops the subscriptions, lets in-flight handlers send their replies,
// and waits up to timeout for the connection to close. On timeout the
// connection is closed hard.
func drain(nc *nats.Conn, closed <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultDrainTimeout
	}
	if err := nc.Drain(); err != nil {
		nc.Close()
		return fmt.Errorf("nats drain: %w", err)
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-closed:
		return nil
	case <-t.C:
		nc.Close()
		return fmt.Errorf("nats drain: timed out after %s", timeout)
	}
}

// serve connects to NATS, registers the responders, and serves gRPC health
// on lis until ctx is cancelled.
func serve(ctx context.Context, cfg Config, lis net.Listener, logger *slog.Logger) error {
	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	nc, closed, err := connect(cfg.NATSURL, hs, logger)
	if err != nil {
		lis.Close()
		return err
	}

	svc := lookup.New(vin.NewDecoder(nil), metrics.New(nil), logger, lookup.Options{
		MaxBatch: cfg.BatchMax,
		Workers:  cfg.BatchWorkers,
		Source:   "nats",
	})
	limiter := resilience.NewLimiter(resilience.LimiterOpts{Rate: cfg.RateLimitRPS, Burst: cfg.BatchMax})
	w := newWorker(svc, limiter, cfg.Events, logger)
	if err := w.subscribe(nc, cfg.Subject, cfg.Queue); err != nil {
		nc.Close()
		lis.Close()
		return err
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		lis.Close()
		return fmt.Errorf("nats flush: %w", err)
	}
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("vin worker starting",
			"subject", cfg.Subject,
			"queue", cfg.Queue,
			"events", cfg.Events,
			"health_addr", lis.Addr().String(),
		)
		if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc health: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		hs.Shutdown()
		if err := drain(nc, closed, cfg.DrainTimeout); err != nil {
			logger.Warn("nats drain", "err", err)
		}
		gs.GracefulStop()
		return nil
	})
	return g.Wait()
}
