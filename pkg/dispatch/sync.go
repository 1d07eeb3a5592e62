package dispatch

import (
	"context"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

// Sync delivers inline, in the caller's goroutine.
type Sync struct {
	deliverer Deliverer
	handlers  []ResultHandler
}

func NewSync(d Deliverer, opts ...Option) (*Sync, error) {
	if d == nil {
		return nil, ErrNilDeliverer
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Sync{deliverer: d, handlers: o.handlers}, nil
}

// Dispatch delivers the job and returns its result. The error is always nil;
// delivery failures are reported through the result only.
// Cancellation of ctx does not abort a delivery in progress.
func (s *Sync) Dispatch(ctx context.Context, job Job) (mailer.Result, error) {
	ctx = context.WithoutCancel(ctx)
	res := deliver(ctx, s.deliverer, job)
	notify(ctx, s.handlers, job, res)
	return res, nil
}
