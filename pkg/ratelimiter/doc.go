// Package ratelimiter throttles requests per key (usually the client IP)
// with golang.org/x/time/rate token buckets held in memory.
//
//	l, err := ratelimiter.New(ratelimiter.Config{Rate: 5, Burst: 20, IdleTTL: 10 * time.Minute})
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//	r.Use(ratelimiter.Middleware(l, func(r *http.Request) string {
//	    return clientip.FromContext(r.Context())
//	}, nil))
package ratelimiter
