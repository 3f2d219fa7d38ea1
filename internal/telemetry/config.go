package telemetry

import (
	"time"

	"codeberg.org/mutker/visionarypub/internal/errors"
)

const (
	defaultDirPerm      = 0o755
	defaultDBPath       = "/var/lib/visionarypub/telemetry.db"
	defaultBatchSize    = 50
	defaultBatchTimeout = 5 * time.Second
)

type Config struct {
	Enabled bool
	DBPath  string
	// BackupDir receives a copy of the database before an incompatible
	// schema is replaced. Empty means a "backups" directory next to DBPath.
	BackupDir    string
	BatchSize    int
	BatchTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate storage settings if telemetry is enabled
	if !c.Enabled {
		return nil
	}
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 1 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchSize int
		}{
			BatchSize: c.BatchSize,
		})
	}
	if c.BatchTimeout < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchTimeout time.Duration
		}{
			BatchTimeout: c.BatchTimeout,
		})
	}
	return nil
}
