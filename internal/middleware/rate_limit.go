package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	HeaderRateLimitRemaining  = "X-Rate-Limit-Remaining"
	HeaderRateLimitRetryAfter = "X-Rate-Limit-Retry-After-Seconds"
)

// RateLimit shares one token bucket of requests per window across every
// request. Allowed requests carry the remaining token count; rejected ones
// get 429 and the whole seconds until a token is available. requests <= 0
// disables limiting.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(float64(requests)/window.Seconds()), requests)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			res := limiter.ReserveN(now, 1)

			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				w.Header().Set(HeaderRateLimitRetryAfter, strconv.FormatInt(int64(math.Ceil(delay.Seconds())), 10))
				writeError(w, r, http.StatusTooManyRequests, "too many requests")
				return
			}

			remaining := int(limiter.TokensAt(now))
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
