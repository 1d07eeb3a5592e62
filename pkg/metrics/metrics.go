package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "formrelay"

// Webhook outcomes recorded by ObserveWebhook.
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomeMissingName   = "missing_name"
	OutcomeNotConfigured = "not_configured"
	OutcomeDuplicate     = "duplicate"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeQueueFull     = "queue_full"
	OutcomeUnavailable   = "unavailable"
	OutcomeRateLimited   = "rate_limited"
	OutcomeError         = "error"
)

// Metrics owns a dedicated registry so tests and multiple instances do not
// collide on the global one. All methods are safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	webhooks      *prometheus.CounterVec
	emails        *prometheus.CounterVec
	emailDuration *prometheus.HistogramVec
}

// New registers the collectors, plus Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		webhooks: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_total",
				Help:      "Webhook requests by outcome.",
			},
			[]string{"outcome"},
		),
		emails: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_total",
				Help:      "Email delivery attempts by status.",
			},
			[]string{"status"},
		),
		emailDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "email_duration_seconds",
				Help:      "Email delivery duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) ObserveWebhook(outcome string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEmail(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(status).Inc()
	m.emailDuration.WithLabelValues(status).Observe(d.Seconds())
}

// RegisterQueueDepth exposes fn as formrelay_dispatch_queue_depth.
func (m *Metrics) RegisterQueueDepth(fn func() int) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dispatch_queue_depth",
			Help:      "Jobs waiting in the dispatch queue.",
		},
		func() float64 { return float64(fn()) },
	))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
