package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPurge removes audit rows for tokens past expiry.
	TaskSessionPurge = "session:purge"
)

// SessionPurger deletes expired session-audit rows. Satisfied by the
// auth repository.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// NewSessionPurgeTask constructs the purge task. It carries no payload;
// the cutoff is computed at execution time.
func NewSessionPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionPurge, nil)
}

// SessionPurgeHandler returns the asynq handler for TaskSessionPurge.
// Expired rows are kept for a day past expiry before removal so recent
// history stays inspectable.
func SessionPurgeHandler(purger SessionPurger, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		cutoff := time.Now().Add(-24 * time.Hour)
		removed, err := purger.DeleteExpiredSessions(ctx, cutoff)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("purged expired sessions", slog.Int64("removed", removed))
		}
		return nil
	}
}
