package cron

import (
	"context"
	"fmt"
	"time"

	"rotharc/config"
	"rotharc/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const maxStartAttempts = 5

// RedisOpt points asynq at the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ConfirmationWorker consumes booking confirmation tasks and writes them to the
// user's notification inbox.
type ConfirmationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func newMux(inbox notification.InboxWriter) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingConfirmation, notification.HandleBookingConfirmation(inbox))
	return mux
}

func NewConfirmationWorker(opt asynq.RedisConnOpt, inbox notification.InboxWriter, logger *zap.Logger) *ConfirmationWorker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		ShutdownTimeout: 10 * time.Second,
	})
	return &ConfirmationWorker{srv: srv, mux: newMux(inbox), logger: logger}
}

// Run starts the worker and blocks until ctx is done. Start failures are
// retried with a growing pause.
func (w *ConfirmationWorker) Run(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= maxStartAttempts; attempt++ {
		if err = w.srv.Start(w.mux); err == nil {
			break
		}
		w.logger.Warn("Failed to start confirmation worker",
			zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(attempt*2) * time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("confirmation worker: %w", err)
	}
	w.logger.Info("Confirmation worker started")

	<-ctx.Done()
	w.srv.Shutdown()
	w.logger.Info("Confirmation worker stopped")
	return nil
}
