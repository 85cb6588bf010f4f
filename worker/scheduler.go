package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Enqueuer is satisfied by *asynq.Client
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler fans the daily reminder run out into one task per opted-in user
type Scheduler struct {
	reminders Reminders
	client    Enqueuer
	queue     string
	log       zerolog.Logger
	now       func() time.Time
	cron      *cron.Cron
}

// NewScheduler creates the scheduler
func NewScheduler(reminders Reminders, client Enqueuer, queue string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		client:    client,
		queue:     queue,
		log:       log,
		now:       time.Now,
	}
}

// EnqueueReminders enqueues today's reminder for every recipient.
// Task ids carry the date, so a second run on the same day is a no-op per user.
func (s *Scheduler) EnqueueReminders(ctx context.Context) (int, error) {
	recipients, err := s.reminders.Recipients(ctx)
	if err != nil {
		return 0, fmt.Errorf("load reminder recipients: %w", err)
	}

	day := s.now().Format("2006-01-02")
	enqueued := 0
	for _, r := range recipients {
		task, err := NewParcelReminderTask(r.UserID)
		if err != nil {
			return enqueued, err
		}
		_, err = s.client.EnqueueContext(ctx, task,
			asynq.Queue(s.queue),
			asynq.TaskID(fmt.Sprintf("%s:%d:%s", TypeParcelReminder, r.UserID, day)),
			asynq.MaxRetry(3),
			asynq.Retention(24*time.Hour),
		)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			continue
		}
		if err != nil {
			return enqueued, fmt.Errorf("enqueue reminder for user %d: %w", r.UserID, err)
		}
		enqueued++
	}
	return enqueued, nil
}

// Start runs EnqueueReminders on the cron expression
func (s *Scheduler) Start(expr string) error {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		n, err := s.EnqueueReminders(context.Background())
		if err != nil {
			s.log.Error().Err(err).Int("enqueued", n).Msg("reminder run failed")
			return
		}
		s.log.Info().Int("enqueued", n).Msg("reminder run finished")
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", expr, err)
	}
	s.cron = c
	c.Start()
	s.log.Info().Str("cron", expr).Msg("reminder scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
