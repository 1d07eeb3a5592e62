package dedupe

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// Guard answers whether a submission should be processed.
// A nil *Guard lets everything through.
type Guard struct {
	store  Store
	logger *slog.Logger
}

func NewGuard(store Store, log *slog.Logger) *Guard {
	if log == nil {
		log = logger.Discard()
	}
	return &Guard{store: store, logger: log}
}

// FirstSeen reports whether submissionID has not been processed within the
// TTL. Submissions without an id are never deduplicated. Store errors fail
// open: the submission is processed and a warning is logged.
func (g *Guard) FirstSeen(ctx context.Context, submissionID string) bool {
	if g == nil || g.store == nil || submissionID == "" {
		return true
	}

	ok, err := g.store.Acquire(ctx, KeyPrefix+submissionID)
	if err != nil {
		g.logger.WarnContext(ctx, "dedupe check failed, allowing submission",
			logger.SubmissionID(submissionID),
			logger.Error(err))
		return true
	}
	if !ok {
		g.logger.InfoContext(ctx, "duplicate submission skipped",
			logger.SubmissionID(submissionID))
	}
	return ok
}

// Forget releases submissionID after a submission was accepted by FirstSeen
// but could not be handed off, so the sender's retry is not treated as a duplicate.
func (g *Guard) Forget(ctx context.Context, submissionID string) {
	if g == nil || g.store == nil || submissionID == "" {
		return
	}
	if err := g.store.Release(ctx, KeyPrefix+submissionID); err != nil {
		g.logger.WarnContext(ctx, "dedupe release failed",
			logger.SubmissionID(submissionID),
			logger.Error(err))
	}
}
