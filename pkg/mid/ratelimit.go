package mid

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// RateLimit returns middleware that rejects requests with 429 once l has no
// tokens left. onLimited, if non-nil, is called for every rejection. A nil
// limiter disables limiting.
func RateLimit(l *rate.Limiter, onLimited func()) Middleware {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				if onLimited != nil {
					onLimited()
				}
				retry := 1
				if lim := l.Limit(); lim > 0 && lim < 1 {
					retry = int(1/float64(lim)) + 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded", "rate_limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
