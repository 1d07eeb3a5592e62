package clientip

import "net/http"

// Middleware stores the resolved client IP in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIP(r.Context(), res.IP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
