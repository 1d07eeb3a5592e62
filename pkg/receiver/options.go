package receiver

import (
	"log/slog"

	"github.com/dmitrymomot/formrelay/pkg/dedupe"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

// Option configures a Receiver.
type Option func(*Receiver)

func WithLogger(l *slog.Logger) Option {
	return func(rc *Receiver) {
		if l != nil {
			rc.logger = l
		}
	}
}

// WithVerifier enables signature verification; requests failing it get 401.
func WithVerifier(v *webflow.Verifier) Option {
	return func(rc *Receiver) { rc.verifier = v }
}

// WithGuard enables duplicate suppression by submission id.
func WithGuard(g *dedupe.Guard) Option {
	return func(rc *Receiver) { rc.guard = g }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(rc *Receiver) { rc.metrics = m }
}

// WithMaxBodyBytes caps the request body. Larger bodies are treated as invalid payloads.
func WithMaxBodyBytes(n int64) Option {
	return func(rc *Receiver) {
		if n > 0 {
			rc.maxBodyBytes = n
		}
	}
}
