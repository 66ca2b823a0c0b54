package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"mediareview-backend/internal/shared"
	"mediareview-backend/pkg/container"
)

// asynqServer wraps asynq.Server for graceful shutdown.
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the Asynq server, registers handlers and starts
// it in the background.
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueModeration:  10,
				shared.QueueMaintenance: 2,
				"default":               5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task_type", task.Type()).Msg("task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown drains in-flight tasks before stopping.
func (s *asynqServer) Shutdown() {
	log.Info().Msg("worker draining tasks")
	s.Server.Shutdown()
}
