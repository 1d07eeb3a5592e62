package dispatch

import (
	"fmt"
	"strings"
)

// New builds the dispatcher selected by cfg.Mode. The returned *Pool is nil
// in sync mode; in async mode it must be started by the caller.
func New(cfg Config, d Deliverer, opts ...Option) (Dispatcher, *Pool, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case ModeAsync, "":
		opts = append([]Option{
			WithWorkers(cfg.Workers),
			WithQueueSize(cfg.QueueSize),
			WithShutdownTimeout(cfg.ShutdownTimeout),
		}, opts...)
		p, err := NewPool(d, opts...)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case ModeSync:
		s, err := NewSync(d, opts...)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}
}
