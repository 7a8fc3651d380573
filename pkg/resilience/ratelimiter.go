// Package resilience provides rate limiting for decode pipelines.
package resilience

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/WessleyAI/wessley-vin/pkg/fn"
)

// ErrRateLimited is returned when a limiter has no token available.
var ErrRateLimited = errors.New("rate limited")

// LimiterOpts configures the token bucket rate limiter.
type LimiterOpts struct {
	// Rate is the number of tokens added per second. Zero or negative
	// disables limiting.
	Rate float64
	// Burst is the maximum number of tokens (bucket capacity).
	Burst int
}

// NewLimiter creates a token bucket limiter from opts.
func NewLimiter(opts LimiterOpts) *rate.Limiter {
	if opts.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst)
}

// LimiterStage wraps an fn.Stage with rate limiting (non-blocking, returns
// ErrRateLimited if no token is available).
func LimiterStage[In, Out any](l *rate.Limiter, stage fn.Stage[In, Out]) fn.Stage[In, Out] {
	return func(ctx context.Context, in In) fn.Result[Out] {
		if !l.Allow() {
			return fn.Err[Out](ErrRateLimited)
		}
		return stage(ctx, in)
	}
}
