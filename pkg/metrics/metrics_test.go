package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestIncrementOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncrementOutcome("http", "")
	m.IncrementOutcome("http", "")
	m.IncrementOutcome("nats", "invalid_length")

	out := scrape(t, m)
	for _, want := range []string{
		`vin_decode_outcomes_total{outcome="ok",source="http"} 2`,
		`vin_decode_outcomes_total{outcome="invalid_length",source="nats"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestObserveDecodeLatency(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveDecodeLatency("cli", 20*time.Microsecond)

	out := scrape(t, m)
	if !strings.Contains(out, `vin_decode_duration_seconds_count{source="cli"} 1`) {
		t.Fatalf("missing latency count in:\n%s", out)
	}
	if !strings.Contains(out, `vin_decode_duration_seconds_bucket{source="cli",le="2.5e-05"} 1`) {
		t.Fatalf("observation not in expected bucket:\n%s", out)
	}
}

func TestObserveBatchSize(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveBatchSize(3)
	m.ObserveBatchSize(100)

	out := scrape(t, m)
	if !strings.Contains(out, "vin_decode_batch_size_count 2") {
		t.Fatalf("missing batch count in:\n%s", out)
	}
	if !strings.Contains(out, "vin_decode_batch_size_sum 103") {
		t.Fatalf("missing batch sum in:\n%s", out)
	}
}

func TestIncrementRateLimited(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncrementRateLimited()
	if out := scrape(t, m); !strings.Contains(out, "vin_http_rate_limited_total 1") {
		t.Fatalf("missing rate limited counter in:\n%s", out)
	}
}

func TestNewWithoutRegistryIncludesRuntime(t *testing.T) {
	m := New(nil)
	m.IncrementOutcome("http", "")
	out := scrape(t, m)
	if !strings.Contains(out, "go_goroutines") {
		t.Fatal("expected go runtime collector output")
	}
	if !strings.Contains(out, "vin_decode_outcomes_total") {
		t.Fatal("expected decode metrics output")
	}
}

func TestSeparateRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New(prometheus.NewRegistry())
	b := New(prometheus.NewRegistry())
	a.IncrementOutcome("http", "")
	if strings.Contains(scrape(t, b), `vin_decode_outcomes_total{`) {
		t.Fatal("registries should be independent")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.IncrementOutcome("http", "")
	m.ObserveDecodeLatency("http", time.Millisecond)
	m.ObserveBatchSize(5)
	m.IncrementRateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
