package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

// Job is one accepted submission waiting for delivery.
type Job struct {
	ID         uuid.UUID
	FormName   string
	Recipient  string
	Fields     webflow.Fields
	RequestID  string
	EnqueuedAt time.Time
}

// NewJob creates a job with a fresh id.
func NewJob(formName, recipient string, fields webflow.Fields, requestID string) Job {
	return Job{
		ID:         uuid.New(),
		FormName:   formName,
		Recipient:  recipient,
		Fields:     fields,
		RequestID:  requestID,
		EnqueuedAt: time.Now(),
	}
}

// Notification converts the job into the mailer's input.
func (j Job) Notification() mailer.Notification {
	return mailer.Notification{
		Recipient: j.Recipient,
		FormName:  j.FormName,
		Fields:    j.Fields,
	}
}

// Deliverer performs the actual delivery. *mailer.Mailer implements it.
type Deliverer interface {
	Deliver(ctx context.Context, n mailer.Notification) mailer.Result
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, n mailer.Notification) mailer.Result

func (f DelivererFunc) Deliver(ctx context.Context, n mailer.Notification) mailer.Result {
	return f(ctx, n)
}

// Dispatcher accepts jobs from the HTTP path.
// Asynchronous implementations return a result with mailer.StatusQueued.
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job) (mailer.Result, error)
}
