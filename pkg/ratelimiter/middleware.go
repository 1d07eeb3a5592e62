package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
)

// KeyFunc extracts the rate limit key from a request.
type KeyFunc func(r *http.Request) string

// Middleware rejects requests over the limit by calling onLimit, after
// setting Retry-After. A nil onLimit answers a plain 429. Requests with an
// empty key are not limited.
func Middleware(l *Limiter, keyFunc KeyFunc, onLimit http.Handler) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if ok, wait := l.Allow(key); !ok {
				if wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				onLimit.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
