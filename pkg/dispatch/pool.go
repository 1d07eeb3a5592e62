package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

// Pool delivers jobs in the background with a fixed number of workers
// reading from a bounded queue.
type Pool struct {
	deliverer Deliverer
	handlers  []ResultHandler
	workers   int
	logger    *slog.Logger

	shutdownTimeout time.Duration

	jobs chan Job
	wg   sync.WaitGroup

	// mu guards the lifecycle state and the jobs channel against
	// a send after close.
	mu      sync.RWMutex
	started bool
	stopped bool
	cancel  context.CancelFunc
}

func NewPool(d Deliverer, opts ...Option) (*Pool, error) {
	if d == nil {
		return nil, ErrNilDeliverer
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Pool{
		deliverer: d,
		handlers:  o.handlers,
		workers:   o.workers,
		logger:    o.logger,

		shutdownTimeout: o.shutdownTimeout,

		jobs: make(chan Job, o.queueSize),
	}, nil
}

// Start launches the workers. Deliveries run on a context detached from
// ctx's cancellation so that shutdown can drain; Stop cancels it.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrPoolStopped
	}
	if p.started {
		return ErrPoolStarted
	}

	workCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.started = true

	p.wg.Add(p.workers)
	for range p.workers {
		go p.work(workCtx)
	}

	p.logger.Info("dispatch pool started",
		slog.Int("workers", p.workers),
		slog.Int("queue_size", cap(p.jobs)))

	return nil
}

// Dispatch enqueues the job without blocking.
func (p *Pool) Dispatch(_ context.Context, job Job) (mailer.Result, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started || p.stopped {
		return mailer.Result{}, ErrPoolStopped
	}

	select {
	case p.jobs <- job:
		return mailer.Result{Status: mailer.StatusQueued}, nil
	default:
		return mailer.Result{}, ErrQueueFull
	}
}

// Check reports ErrPoolStopped unless the pool is accepting jobs.
// It fits httpserver.HealthCheckHandler.
func (p *Pool) Check(context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.started || p.stopped {
		return ErrPoolStopped
	}
	return nil
}

// Len returns the number of queued jobs not yet picked up by a worker.
func (p *Pool) Len() int {
	return len(p.jobs)
}

// Stop refuses new jobs and waits until queued jobs are delivered or ctx
// expires. On expiry in-flight deliveries are cancelled and ctx's error is returned.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.stopped = true
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.jobs)
	cancel := p.cancel
	p.mu.Unlock()

	p.logger.Info("dispatch pool stopping, draining queue", slog.Int("pending", len(p.jobs)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		p.logger.Info("dispatch pool stopped")
		return nil
	case <-ctx.Done():
		cancel()
		p.logger.Warn("dispatch pool stop timed out",
			slog.Int("pending", len(p.jobs)))
		return ctx.Err()
	}
}

// Run starts the pool and returns a function suitable for errgroup.
// The pool stops once ctx is done, draining for at most the shutdown timeout.
func (p *Pool) Run(ctx context.Context) func() error {
	return func() error {
		if err := p.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.shutdownTimeout)
		defer cancel()
		return p.Stop(sctx)
	}
}

func (p *Pool) work(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		res := deliver(ctx, p.deliverer, job)
		notify(ctx, p.handlers, job, res)
	}
}
