package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"mediareview-backend/internal/config"
)

// Runner dumps the database to a timestamped file. It shells out to pg_dump,
// so the binary must be on PATH wherever the worker runs.
type Runner struct {
	db  config.DatabaseConfig
	dir string
}

func NewRunner(db config.DatabaseConfig, dir string) *Runner {
	return &Runner{db: db, dir: dir}
}

// Run writes <dir>/<unix-ts>.dump.sql and returns its path.
func (r *Runner) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dumpFile := filepath.Join(r.dir, fmt.Sprintf("%d.dump.sql", time.Now().Unix()))

	out, err := os.Create(dumpFile)
	if err != nil {
		return "", fmt.Errorf("create dump file: %w", err)
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", r.db.Host,
		"-p", strconv.Itoa(r.db.Port),
		"-U", r.db.User,
		"-d", r.db.Database,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+r.db.Password)
	cmd.Stdout = out

	if err := cmd.Run(); err != nil {
		// Remove the partial file so a failed run never looks like a backup.
		os.Remove(dumpFile)
		return "", fmt.Errorf("pg_dump failed: %w", err)
	}

	log.Info().Str("file", dumpFile).Msg("database backup completed")
	return dumpFile, nil
}
