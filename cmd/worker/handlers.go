package main

import (
	"github.com/hibiken/asynq"

	reviewJob "mediareview-backend/internal/domains/review/job"
	"mediareview-backend/internal/infrastructure/backup"
	backupJob "mediareview-backend/internal/infrastructure/backup/job"
	"mediareview-backend/internal/shared"
	"mediareview-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	moderationEvent *reviewJob.ModerationEventHandler
	databaseBackup  *backupJob.DatabaseBackupHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	backupRunner := backup.NewRunner(c.Config.Database, c.Config.Backup.Dir)

	return &HandlerRegistry{
		moderationEvent: reviewJob.NewModerationEventHandler(c.ReviewRepo, c.Cache),
		databaseBackup:  backupJob.NewDatabaseBackupHandler(backupRunner),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReviewModerationEvent, h.moderationEvent.ProcessTask)
	mux.HandleFunc(shared.TypeDatabaseBackup, h.databaseBackup.ProcessTask)
}
