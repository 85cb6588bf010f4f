package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/config"
	"fintrack/database"
	"fintrack/logger"
	"fintrack/service"
	"fintrack/worker"

	"github.com/hibiken/asynq"
)

func main() {
	configFile := flag.String("c", "", "external config file (optional)")
	noSchedule := flag.Bool("no-schedule", false, "only consume tasks, do not run the cron scheduler")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.Mode)

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	email := service.NewEmailService(&cfg.Email)
	if !email.Enabled() {
		log.Warn().Msg("email disabled, reminder tasks will be skipped")
	}
	reminders := service.NewReminderService(db, email)

	redisOpt := worker.RedisOpt(cfg.Redis)
	srv := worker.NewServer(redisOpt, cfg.Reminder, log)
	if err := srv.Start(worker.NewServeMux(worker.NewHandler(reminders, log))); err != nil {
		log.Fatal().Err(err).Msg("start task server")
	}
	log.Info().Str("redis", cfg.Redis.Addr).Str("queue", cfg.Reminder.Queue).Msg("reminder worker started")

	var scheduler *worker.Scheduler
	if !*noSchedule {
		client := asynq.NewClient(redisOpt)
		defer client.Close()

		scheduler = worker.NewScheduler(reminders, client, cfg.Reminder.Queue, log)
		if err := scheduler.Start(cfg.Reminder.Cron); err != nil {
			log.Fatal().Err(err).Msg("start scheduler")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	if scheduler != nil {
		scheduler.Stop()
	}
	srv.Shutdown()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("worker exited")
}
