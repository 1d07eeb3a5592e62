package receiver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formrelay/pkg/dedupe"
	"github.com/dmitrymomot/formrelay/pkg/dispatch"
	"github.com/dmitrymomot/formrelay/pkg/forms"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

const defaultMaxBodyBytes = 1 << 20

// Receiver accepts Webflow form-submission webhooks and hands configured
// submissions to a dispatcher.
type Receiver struct {
	forms      *forms.Registry
	dispatcher dispatch.Dispatcher

	verifier     *webflow.Verifier
	guard        *dedupe.Guard
	metrics      *metrics.Metrics
	logger       *slog.Logger
	maxBodyBytes int64
}

func New(registry *forms.Registry, d dispatch.Dispatcher, opts ...Option) (*Receiver, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if d == nil {
		return nil, ErrNilDispatcher
	}

	rc := &Receiver{
		forms:        registry,
		dispatcher:   d,
		logger:       logger.Discard(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc, nil
}

// HandleIndex answers the liveness banner.
func (rc *Receiver) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, IndexMessage)
}

// HandleWebhook processes one submission. Anything that is not a configured
// form is acknowledged with 200 so the platform does not retry it.
func (rc *Receiver) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := rc.logger

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rc.maxBodyBytes))
	if err != nil {
		log.WarnContext(ctx, "webhook body rejected", logger.Error(err))
		rc.observe(metrics.OutcomeInvalid)
		ignored(w, ReasonInvalidPayload)
		return
	}

	if rc.verifier != nil {
		if err := rc.verifier.Verify(r.Header, body); err != nil {
			log.WarnContext(ctx, "webhook signature rejected", logger.Error(err))
			rc.observe(metrics.OutcomeUnauthorized)
			failure(w, http.StatusUnauthorized, MessageUnauthorized)
			return
		}
	}

	sub, err := webflow.Parse(body)
	switch {
	case errors.Is(err, webflow.ErrMissingFormName):
		log.InfoContext(ctx, "webhook ignored: form name missing", logger.SubmissionID(sub.SubmissionID))
		rc.observe(metrics.OutcomeMissingName)
		ignored(w, ReasonMissingName)
		return
	case err != nil:
		log.InfoContext(ctx, "webhook ignored: invalid payload", logger.Error(err))
		rc.observe(metrics.OutcomeInvalid)
		ignored(w, ReasonInvalidPayload)
		return
	}

	log = log.With(logger.Form(sub.FormName), logger.SubmissionID(sub.SubmissionID))

	recipient, ok := rc.forms.Lookup(sub.FormName)
	if !ok {
		log.WarnContext(ctx, "webhook ignored: form not configured")
		rc.observe(metrics.OutcomeNotConfigured)
		ignored(w, ReasonNotConfigured)
		return
	}

	if !rc.guard.FirstSeen(ctx, sub.SubmissionID) {
		rc.observe(metrics.OutcomeDuplicate)
		ignored(w, ReasonDuplicate)
		return
	}

	job := dispatch.NewJob(sub.FormName, recipient, sub.Data, middleware.GetReqID(ctx))
	res, err := rc.dispatcher.Dispatch(ctx, job)
	if err != nil {
		rc.guard.Forget(ctx, sub.SubmissionID)

		switch {
		case errors.Is(err, dispatch.ErrQueueFull):
			log.ErrorContext(ctx, "dispatch queue full", logger.JobID(job.ID))
			rc.observe(metrics.OutcomeQueueFull)
			failure(w, http.StatusServiceUnavailable, MessageQueueFull)
		case errors.Is(err, dispatch.ErrPoolStopped):
			log.WarnContext(ctx, "dispatch pool stopped", logger.JobID(job.ID))
			rc.observe(metrics.OutcomeUnavailable)
			failure(w, http.StatusServiceUnavailable, MessageUnavailable)
		default:
			log.ErrorContext(ctx, "dispatch failed", logger.JobID(job.ID), logger.Error(err))
			rc.observe(metrics.OutcomeError)
			failure(w, http.StatusInternalServerError, MessageInternalError)
		}
		return
	}

	log.InfoContext(ctx, "webhook accepted",
		logger.JobID(job.ID),
		logger.Recipient(recipient),
		logger.Status(string(res.Status)))
	rc.observe(metrics.OutcomeAccepted)

	switch res.Status {
	case mailer.StatusQueued:
		success(w, MessageQueued)
	case mailer.StatusSent:
		success(w, MessageSent)
	default:
		success(w, MessageNotSent)
	}
}

func (rc *Receiver) observe(outcome string) {
	rc.metrics.ObserveWebhook(outcome)
}
