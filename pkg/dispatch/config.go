package dispatch

import "time"

const (
	ModeAsync = "async"
	ModeSync  = "sync"
)

// Config controls how accepted submissions are handed to the mailer.
type Config struct {
	Mode            string        `env:"DISPATCH_MODE" envDefault:"async"`
	Workers         int           `env:"DISPATCH_WORKERS" envDefault:"4"`
	QueueSize       int           `env:"DISPATCH_QUEUE_SIZE" envDefault:"100"`
	ShutdownTimeout time.Duration `env:"DISPATCH_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}
