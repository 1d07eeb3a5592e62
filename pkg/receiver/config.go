package receiver

import "time"

type Config struct {
	MaxBodyBytes    int64         `env:"WEBHOOK_MAX_BODY_BYTES" envDefault:"1048576"`
	Secret          string        `env:"WEBFLOW_SECRET"`
	SignatureMaxAge time.Duration `env:"WEBFLOW_SIGNATURE_MAX_AGE" envDefault:"5m"`
	// TrustProxy honors X-Forwarded-For and friends when resolving client IPs.
	TrustProxy     bool          `env:"WEBHOOK_TRUST_PROXY" envDefault:"false"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
	HealthTimeout  time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"2s"`
}
