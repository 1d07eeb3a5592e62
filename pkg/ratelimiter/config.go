package ratelimiter

import "time"

// Config sets the per-key token bucket. A zero Rate disables limiting.
type Config struct {
	Rate  float64 `env:"WEBHOOK_RATE_LIMIT" envDefault:"0"`  // tokens per second
	Burst int     `env:"WEBHOOK_RATE_BURST" envDefault:"20"` // bucket capacity
	// IdleTTL drops limiters for keys not seen for this long.
	IdleTTL time.Duration `env:"WEBHOOK_RATE_IDLE_TTL" envDefault:"10m"`
}

// Enabled reports whether limiting is configured.
func (c Config) Enabled() bool {
	return c.Rate > 0
}
