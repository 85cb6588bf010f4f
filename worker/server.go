package worker

import (
	"context"

	"fintrack/config"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// RedisOpt asynq connection settings from config
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewServer asynq server consuming the reminder queue
func NewServer(redisOpt asynq.RedisClientOpt, cfg config.ReminderConfig, log zerolog.Logger) *asynq.Server {
	return asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				cfg.Queue: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task", task.Type()).Msg("task failed")
			}),
		},
	)
}

// NewServeMux routes task types to the handler
func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeParcelReminder, h.HandleParcelReminder)
	return mux
}
