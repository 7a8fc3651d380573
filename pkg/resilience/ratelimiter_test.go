package resilience

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"

	"github.com/WessleyAI/wessley-vin/pkg/fn"
)

func echo() fn.Stage[string, string] {
	return func(_ context.Context, s string) fn.Result[string] { return fn.Ok(s) }
}

func TestNewLimiterBurst(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0.001, Burst: 3})
	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("expected allow on call %d", i)
		}
	}
	if l.Allow() {
		t.Fatal("expected rejection after burst exhausted")
	}
}

func TestNewLimiterDefaultBurst(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 5})
	if l.Burst() != 1 {
		t.Fatalf("expected burst 1, got %d", l.Burst())
	}
}

func TestNewLimiterDisabled(t *testing.T) {
	l := NewLimiter(LimiterOpts{})
	if l.Limit() != rate.Inf {
		t.Fatalf("expected infinite limit, got %v", l.Limit())
	}
	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatal("disabled limiter rejected a call")
		}
	}
}

func TestLimiterStage(t *testing.T) {
	stage := LimiterStage(NewLimiter(LimiterOpts{Rate: 0.001, Burst: 1}), echo())
	ctx := context.Background()

	if r := stage(ctx, "WVW"); r.IsErr() {
		t.Fatalf("unexpected error: %v", r.Error())
	}
	r := stage(ctx, "WVW")
	if !errors.Is(r.Error(), ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", r.Error())
	}
}
