package dispatch

import "errors"

var (
	// ErrQueueFull is returned by Pool.Dispatch when the bounded queue has no room.
	ErrQueueFull = errors.New("dispatch: queue is full")

	// ErrPoolStopped is returned when dispatching to a pool that is not running.
	ErrPoolStopped = errors.New("dispatch: pool stopped")

	ErrPoolStarted  = errors.New("dispatch: pool already started")
	ErrNilDeliverer = errors.New("dispatch: deliverer cannot be nil")
	ErrInvalidMode  = errors.New("dispatch: invalid mode")

	// ErrDeliveryPanic wraps a panic recovered from a deliverer.
	ErrDeliveryPanic = errors.New("dispatch: delivery panicked")
)
