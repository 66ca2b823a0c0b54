package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"mediareview-backend/internal/infrastructure/backup"
	"mediareview-backend/pkg/logger"
)

// ================================================
// DATABASE BACKUP JOB HANDLER
// ================================================

// DatabaseBackupHandler runs the scheduled pg_dump.
type DatabaseBackupHandler struct {
	runner *backup.Runner
}

func NewDatabaseBackupHandler(runner *backup.Runner) *DatabaseBackupHandler {
	return &DatabaseBackupHandler{runner: runner}
}

func (h *DatabaseBackupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	file, err := h.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("database backup: %w", err)
	}

	logger.Info("database backup written", map[string]interface{}{"file": file})
	return nil
}
