package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
)

// ResultHandler observes the outcome of every delivery.
type ResultHandler func(ctx context.Context, job Job, res mailer.Result)

// LogHandler logs each result: info when sent, warn when skipped, error when failed.
func LogHandler(log *slog.Logger) ResultHandler {
	return func(ctx context.Context, job Job, res mailer.Result) {
		attrs := []slog.Attr{
			logger.JobID(job.ID),
			logger.RequestID(job.RequestID),
			logger.Form(job.FormName),
			logger.Recipient(job.Recipient),
			logger.Status(string(res.Status)),
			logger.Duration(res.Duration),
		}

		switch res.Status {
		case mailer.StatusSent:
			log.LogAttrs(ctx, slog.LevelInfo, "email sent", attrs...)
		case mailer.StatusSkipped:
			log.LogAttrs(ctx, slog.LevelWarn, "email skipped",
				append(attrs, slog.String("reason", res.Reason()))...)
		default:
			log.LogAttrs(ctx, slog.LevelError, "email delivery failed",
				append(attrs, slog.String("reason", res.Reason()), logger.Error(res.Err))...)
		}
	}
}

// MetricsHandler records email counters and latency.
func MetricsHandler(m *metrics.Metrics) ResultHandler {
	return func(_ context.Context, _ Job, res mailer.Result) {
		m.ObserveEmail(string(res.Status), res.Duration)
	}
}

// deliver runs the deliverer and converts a panic into a failed result.
func deliver(ctx context.Context, d Deliverer, job Job) (res mailer.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = mailer.Result{
				Status:   mailer.StatusFailed,
				Err:      fmt.Errorf("%w: %v", ErrDeliveryPanic, r),
				Duration: time.Since(start),
			}
		}
	}()
	return d.Deliver(ctx, job.Notification())
}

func notify(ctx context.Context, handlers []ResultHandler, job Job, res mailer.Result) {
	for _, h := range handlers {
		h(ctx, job, res)
	}
}
