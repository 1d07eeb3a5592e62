package dispatch

import (
	"log/slog"
	"time"
)

// Option configures a Pool or a Sync dispatcher.
type Option func(*options)

type options struct {
	workers   int
	queueSize int
	handlers  []ResultHandler
	logger    *slog.Logger

	shutdownTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		workers:   4,
		queueSize: 100,
		logger:    slog.Default(),

		shutdownTimeout: 30 * time.Second,
	}
}

// WithWorkers sets the number of delivery goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets the bound of the pending job queue.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithResultHandlers appends result observers. Nil handlers are ignored.
func WithResultHandlers(handlers ...ResultHandler) Option {
	return func(o *options) {
		for _, h := range handlers {
			if h != nil {
				o.handlers = append(o.handlers, h)
			}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithShutdownTimeout bounds how long Run waits for the queue to drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
