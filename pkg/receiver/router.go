package receiver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
	"github.com/dmitrymomot/formrelay/pkg/ratelimiter"
)

// RouterOption configures the HTTP surface around a Receiver.
type RouterOption func(*routerConfig)

type routerConfig struct {
	clientIP      *clientip.Resolver
	limiter       *ratelimiter.Limiter
	checks        []httpserver.Check
	healthTimeout time.Duration
	metrics       http.Handler
}

// WithClientIP sets how client addresses are resolved. Defaults to RemoteAddr only.
func WithClientIP(res *clientip.Resolver) RouterOption {
	return func(c *routerConfig) {
		if res != nil {
			c.clientIP = res
		}
	}
}

// WithRateLimiter limits POST /webhook per client IP.
func WithRateLimiter(l *ratelimiter.Limiter) RouterOption {
	return func(c *routerConfig) { c.limiter = l }
}

// WithReadiness adds dependency checks to GET /healthz.
func WithReadiness(timeout time.Duration, checks ...httpserver.Check) RouterOption {
	return func(c *routerConfig) {
		c.healthTimeout = timeout
		for _, ch := range checks {
			if ch != nil {
				c.checks = append(c.checks, ch)
			}
		}
	}
}

// WithMetricsEndpoint mounts GET /metrics.
func WithMetricsEndpoint(m *metrics.Metrics) RouterOption {
	return func(c *routerConfig) {
		if m != nil {
			c.metrics = m.Handler()
		}
	}
}

// NewRouter builds the chi router:
//
//	GET  /         liveness banner
//	GET  /healthz  readiness
//	GET  /metrics  Prometheus exposition, when enabled
//	POST /webhook  submission intake
func NewRouter(rc *Receiver, opts ...RouterOption) http.Handler {
	cfg := &routerConfig{clientIP: clientip.New()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		cfg.clientIP.Middleware,
		accessLog(rc.logger),
		recoverer(rc.logger),
	)

	r.Get("/", rc.HandleIndex)
	r.Get("/healthz", httpserver.HealthCheckHandler(rc.logger, cfg.healthTimeout, cfg.checks...))
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.limiter != nil {
			r.Use(ratelimiter.Middleware(cfg.limiter, func(req *http.Request) string {
				return clientip.FromContext(req.Context())
			}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				rc.observe(metrics.OutcomeRateLimited)
				failure(w, http.StatusTooManyRequests, MessageRateLimited)
			})))
		}
		r.Post("/webhook", rc.HandleWebhook)
	})

	return r
}
