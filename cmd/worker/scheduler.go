package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"mediareview-backend/internal/shared"
	"mediareview-backend/pkg/container"
)

// asynqScheduler wraps asynq.Scheduler for graceful shutdown.
type asynqScheduler struct {
	*asynq.Scheduler
}

// setupScheduler registers the recurring jobs and starts the scheduler in
// the background.
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		nil,
	)

	if c.Config.Backup.Enabled {
		task := asynq.NewTask(shared.TypeDatabaseBackup, nil)
		entryID, err := scheduler.Register(
			c.Config.Backup.CronSpec,
			task,
			asynq.Queue(shared.QueueMaintenance),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register backup job")
		}
		log.Info().Str("entry_id", entryID).Str("cron", c.Config.Backup.CronSpec).Msg("backup job scheduled")
	}

	go func() {
		log.Info().Msg("scheduler starting")
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown stops the scheduler.
func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
	log.Info().Msg("scheduler stopped")
}
