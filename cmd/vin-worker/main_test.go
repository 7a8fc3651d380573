package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/natsutil"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

func startTestNATS(t *testing.T) (*natsserver.Server, *nats.Conn) {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Port: -1})
	if err != nil {
		t.Fatal(err)
	}
	srv.Start()
	if !srv.ReadyForConnections(3 * time.Second) {
		t.Fatal("nats not ready")
	}
	nc, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		nc.Close()
		srv.Shutdown()
	})
	return srv, nc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startWorker(t *testing.T, nc *nats.Conn, opts lookup.Options, limit resilience.LimiterOpts) {
	t.Helper()
	startWorkerWithEvents(t, nc, opts, limit, "")
}

func startWorkerWithEvents(t *testing.T, nc *nats.Conn, opts lookup.Options, limit resilience.LimiterOpts, events string) {
	t.Helper()
	svc := lookup.New(vin.NewDecoder(nil, vin.WithYear(2025)), nil, discardLogger(), opts)
	w := newWorker(svc, resilience.NewLimiter(limit), events, discardLogger())
	if err := w.subscribe(nc, "vin.decode", "vin-workers"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		for _, s := range w.subs {
			s.Unsubscribe()
		}
	})
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeReply(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorker(t, nc, lookup.Options{Source: "nats"}, resilience.LimiterOpts{})

	reply, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](context.Background(), nc, "vin.decode", lookup.DecodeRequest{VIN: "WVWZZZAUZ3W581234"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Vehicle == nil {
		t.Fatalf("expected vehicle, got %+v", reply)
	}
	if reply.Vehicle.Model != "ID.3" || reply.Vehicle.MileageKM != 181192 {
		t.Fatalf("unexpected vehicle: %+v", reply.Vehicle)
	}
}

func TestDecodeReply_Errors(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorker(t, nc, lookup.Options{}, resilience.LimiterOpts{})

	cases := map[string]string{
		"SHORT":             "invalid_length",
		"ZZZ00000000000000": "unknown_manufacturer",
	}
	for in, code := range cases {
		reply, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](context.Background(), nc, "vin.decode", lookup.DecodeRequest{VIN: in})
		if err != nil {
			t.Fatal(err)
		}
		if reply.Code != code || reply.Vehicle != nil || reply.Error == "" {
			t.Fatalf("%s: unexpected reply %+v", in, reply)
		}
	}
}

func TestDecodeReply_MalformedPayload(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorker(t, nc, lookup.Options{}, resilience.LimiterOpts{})

	for _, subject := range []string{"vin.decode", "vin.decode.batch"} {
		msg, err := nc.Request(subject, []byte("not json"), 2*time.Second)
		if err != nil {
			t.Fatalf("%s: expected a reply, got %v", subject, err)
		}
		var reply lookup.BatchReply
		if err := json.Unmarshal(msg.Data, &reply); err != nil {
			t.Fatal(err)
		}
		if reply.Code != "invalid_request" || !strings.HasPrefix(reply.Error, "invalid request: ") {
			t.Fatalf("%s: unexpected reply %+v", subject, reply)
		}
	}
}

func TestDecodeReply_PublishesEvents(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorkerWithEvents(t, nc, lookup.Options{Source: "nats"}, resilience.LimiterOpts{}, "vin.decoded")

	sub, err := nc.SubscribeSync("vin.decoded")
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](ctx, nc, "vin.decode", lookup.DecodeRequest{VIN: "SHORT"}); err != nil {
		t.Fatal(err)
	}
	if _, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](ctx, nc, "vin.decode", lookup.DecodeRequest{VIN: "WVWZZZAUZ3W581234"}); err != nil {
		t.Fatal(err)
	}

	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatal(err)
	}
	var ev lookup.DecodedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.VIN != "WVWZZZAUZ3W581234" || ev.Brand != "Volkswagen" || ev.Source != "nats" || ev.DecodedAt.IsZero() {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if extra, err := sub.NextMsg(100 * time.Millisecond); err == nil {
		t.Fatalf("failed decode should not publish, got %s", extra.Data)
	}
}

func TestDrain_FinishesInFlightRequest(t *testing.T) {
	srv, client := startTestNATS(t)
	nc, closed, err := connect(srv.ClientURL(), health.NewServer(), discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	if _, err := nc.QueueSubscribe("vin.slow", "vin-workers", func(msg *nats.Msg) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		msg.Respond([]byte("done"))
	}); err != nil {
		t.Fatal(err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}

	type result struct {
		msg *nats.Msg
		err error
	}
	got := make(chan result, 1)
	go func() {
		msg, err := client.Request("vin.slow", nil, 3*time.Second)
		got <- result{msg, err}
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}
	if err := drain(nc, closed, 3*time.Second); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !nc.IsClosed() {
		t.Fatal("connection should be closed after drain")
	}

	r := <-got
	if r.err != nil {
		t.Fatalf("in-flight request lost: %v", r.err)
	}
	if string(r.msg.Data) != "done" {
		t.Fatalf("unexpected reply %q", r.msg.Data)
	}
}

func TestDrain_TimesOut(t *testing.T) {
	srv, client := startTestNATS(t)
	nc, closed, err := connect(srv.ClientURL(), health.NewServer(), discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	if _, err := nc.Subscribe("vin.stuck", func(msg *nats.Msg) {
		close(started)
		<-release
	}); err != nil {
		t.Fatal(err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := client.Publish("vin.stuck", nil); err != nil {
		t.Fatal(err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("message never reached the handler")
	}
	err = drain(nc, closed, 50*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected drain timeout, got %v", err)
	}
	if !nc.IsClosed() {
		t.Fatal("connection should be closed after a drain timeout")
	}
}

func TestDecodeReply_RateLimited(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorker(t, nc, lookup.Options{}, resilience.LimiterOpts{Rate: 0.001, Burst: 1})

	req := lookup.DecodeRequest{VIN: "WVWZZZAUZ3W581234"}
	first, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](context.Background(), nc, "vin.decode", req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Vehicle == nil {
		t.Fatalf("expected vehicle, got %+v", first)
	}
	second, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](context.Background(), nc, "vin.decode", req)
	if err != nil {
		t.Fatal(err)
	}
	if second.Code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %+v", second)
	}
}

func TestBatchReply(t *testing.T) {
	_, nc := startTestNATS(t)
	startWorker(t, nc, lookup.Options{MaxBatch: 3}, resilience.LimiterOpts{})

	reply, err := natsutil.Request[lookup.BatchRequest, lookup.BatchReply](context.Background(), nc, "vin.decode.batch",
		lookup.BatchRequest{VINs: []string{"WVWZZZAUZ3W581234", "bad", "TMBAJ7NE5L0123450"}})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Code != "" || len(reply.Results) != 3 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.Results[0].Vehicle == nil || reply.Results[1].Code != "invalid_length" || reply.Results[2].Vehicle.Brand != "Skoda" {
		t.Fatalf("unexpected results: %+v", reply.Results)
	}

	tooBig, err := natsutil.Request[lookup.BatchRequest, lookup.BatchReply](context.Background(), nc, "vin.decode.batch",
		lookup.BatchRequest{VINs: []string{"a", "b", "c", "d"}})
	if err != nil {
		t.Fatal(err)
	}
	if tooBig.Code != "batch_too_large" || tooBig.Results != nil {
		t.Fatalf("unexpected reply: %+v", tooBig)
	}
}

func TestServe_HealthAndShutdown(t *testing.T) {
	srv, nc := startTestNATS(t)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		NATSURL:      srv.ClientURL(),
		Subject:      "vin.decode",
		Queue:        "vin-workers",
		BatchMax:     10,
		BatchWorkers: 2,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, lis, discardLogger()) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: serviceName})
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("worker never became healthy: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	reply, err := natsutil.Request[lookup.DecodeRequest, lookup.DecodeReply](context.Background(), nc, "vin.decode", lookup.DecodeRequest{VIN: "wba5aec09kg123457"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Vehicle == nil || reply.Vehicle.Brand != "BMW" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_BadNATSURL(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{NATSURL: "nats://127.0.0.1:1", Subject: "vin.decode"}
	err = serve(context.Background(), cfg, lis, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "nats connect") {
		t.Fatalf("expected nats connect error, got %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Subject != "vin.decode" || cfg.Queue != "vin-workers" || cfg.HealthAddr != ":50051" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.NATSURL != nats.DefaultURL || cfg.RateLimitRPS != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Events != "vin.decoded" || cfg.DrainTimeout != defaultDrainTimeout {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_BadNumber(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "fast")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadConfig_BadDrainTimeout(t *testing.T) {
	t.Setenv("NATS_DRAIN_TIMEOUT", "soon")
	if _, err := loadConfig(); err == nil || !strings.Contains(err.Error(), "NATS_DRAIN_TIMEOUT") {
		t.Fatalf("expected NATS_DRAIN_TIMEOUT error, got %v", err)
	}
}
