package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Worker wraps the asynq server and its cron scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Purger    SessionPurger
	// PurgeSpec is the cron expression for the session purge.
	// Defaults to hourly.
	PurgeSpec string
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSessionPurge, SessionPurgeHandler(cfg.Purger, cfg.Logger))

	spec := cfg.PurgeSpec
	if spec == "" {
		spec = "@every 1h"
	}
	scheduler := asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(spec, NewSessionPurgeTask(), asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}
