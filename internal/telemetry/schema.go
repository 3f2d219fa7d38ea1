package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/logger"
)

const (
	SchemaVersion = 1

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS frames (
	       run_id       TEXT    NOT NULL,
	       seq          INTEGER NOT NULL CHECK (typeof(seq) = 'integer'),
	       stamp_ns     INTEGER NOT NULL CHECK (typeof(stamp_ns) = 'integer'),
	       duration_ns  INTEGER NOT NULL CHECK (duration_ns >= 0),
	       published    INTEGER NOT NULL CHECK (published >= 0),
	       skipped      INTEGER NOT NULL CHECK (skipped >= 0),
	       failed       INTEGER NOT NULL CHECK (failed >= 0),
	       PRIMARY KEY (run_id, seq)
	   );
	   CREATE TABLE IF NOT EXISTS stream_outcomes (
	       run_id      TEXT    NOT NULL,
	       seq         INTEGER NOT NULL,
	       stream      TEXT    NOT NULL,
	       outcome     TEXT    NOT NULL CHECK (outcome IN ('published', 'skipped', 'failed')),
	       error_code  TEXT,
	       error       TEXT,
	       PRIMARY KEY (run_id, seq, stream),
	       FOREIGN KEY (run_id, seq) REFERENCES frames (run_id, seq)
	   );`

	insertFrameSQL = `
    INSERT INTO frames (
        run_id, seq, stamp_ns, duration_ns,
        published, skipped, failed
    ) VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertStreamOutcomeSQL = `
    INSERT INTO stream_outcomes (
        run_id, seq, stream, outcome, error_code, error
    ) VALUES (?, ?, ?, ?, ?, ?)`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	log.Debug().Msg("Creating database...")

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Debug().Err(err).Msg("Failed to rollback transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "create_tables",
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// GetSchemaVersion returns the current schema version, or 0 for an empty
// database.
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errors.New().WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}
