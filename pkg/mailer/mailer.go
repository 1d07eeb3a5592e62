package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

// Status is the outcome category of a delivery attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	// StatusQueued is reported by asynchronous dispatchers that accepted the
	// job without waiting for delivery.
	StatusQueued Status = "queued"
)

// Notification is what the receiver asks to be delivered.
type Notification struct {
	Recipient string
	FormName  string
	Fields    webflow.Fields
}

// Result describes one delivery attempt. Err is nil only for sent and queued results.
type Result struct {
	Status   Status
	Err      error
	Duration time.Duration
}

// Reason returns a short machine-friendly failure category, or "" on success.
func (r Result) Reason() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(r.Err, ErrInvalidMessage):
		return "invalid_message"
	case errors.Is(r.Err, ErrConnect):
		return "connect"
	case errors.Is(r.Err, ErrStartTLS):
		return "starttls"
	case errors.Is(r.Err, ErrAuth):
		return "auth"
	case errors.Is(r.Err, ErrSend):
		return "send"
	case errors.Is(r.Err, context.DeadlineExceeded), errors.Is(r.Err, context.Canceled):
		return "timeout"
	default:
		return "unknown"
	}
}

// Mailer composes notifications and hands them to a Sender.
// It never retries; the caller decides what to do with a failed Result.
type Mailer struct {
	sender Sender
	from   string
}

func New(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from}
}

// Deliver composes and sends one notification.
func (m *Mailer) Deliver(ctx context.Context, n Notification) Result {
	start := time.Now()
	msg := Compose(m.from, n.Recipient, n.FormName, n.Fields)
	err := m.sender.Send(ctx, msg)

	res := Result{Err: err, Duration: time.Since(start)}
	switch {
	case err == nil:
		res.Status = StatusSent
	case errors.Is(err, ErrMissingCredentials):
		res.Status = StatusSkipped
	default:
		res.Status = StatusFailed
	}
	return res
}
