package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	stopCleanup chan struct{}
}

type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a limiter and starts its idle-key janitor.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if cfg.Rate <= 0 || cfg.Burst <= 0 {
		return nil, ErrInvalidConfig
	}

	l := &Limiter{
		entries:     make(map[string]*entry),
		limit:       rate.Limit(cfg.Rate),
		burst:       cfg.Burst,
		idleTTL:     cfg.IdleTTL,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.idleTTL > 0 {
		go l.cleanup()
	}
	return l, nil
}

// Allow consumes one token for key. When denied it also returns how long
// until a token becomes available.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) removeIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, key)
		}
	}
}

// Close stops the janitor. Safe to call multiple times.
func (l *Limiter) Close() {
	select {
	case <-l.stopCleanup:
	default:
		close(l.stopCleanup)
	}
}
