package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty_portal_backend/internal/events"
	"realty_portal_backend/internal/tasks/repository"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/config"
	"realty_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes reminder jobs and republishes them as domain events.
type Worker struct {
	server       *asynq.Server
	mux          *asynq.ServeMux
	repo         repository.Repository
	bus          events.Bus
	reminderLead time.Duration
	log          *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:       server,
		mux:          mux,
		repo:         repository.New(pool),
		bus:          bus,
		reminderLead: cfg.GetTaskReminderLead(),
		log:          log,
	}

	mux.HandleFunc(TaskReminderDue, w.handleTaskReminder)

	return w, nil
}

// Run blocks processing jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleTaskReminder re-checks the stored task before notifying: a task that
// was completed, deleted, or rescheduled further out since the reminder was
// enqueued is dropped silently.
func (w *Worker) handleTaskReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseTaskReminderPayload(task)
	if err != nil {
		return err
	}

	stored, err := w.repo.GetByID(ctx, payload.TaskID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if stored.Done || stored.DueDate == nil {
		return nil
	}
	if time.Until(*stored.DueDate) > w.reminderLead+time.Minute {
		return nil
	}

	if w.bus == nil {
		return errors.New("event bus not configured")
	}

	return w.bus.PublishSync(ctx, events.TaskDueSoon{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    stored.ID,
		Title:     stored.Title,
		DueDate:   *stored.DueDate,
	})
}
