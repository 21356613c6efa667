package trace

import (
	"database/sql"
	"fmt"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

// migrations contains the ordered list of schema changes to apply.
var migrations = []string{
	`CREATE TABLE scenarios (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		source      TEXT NOT NULL DEFAULT '',
		tags        TEXT NOT NULL DEFAULT '',
		started_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE step_events (
		id           INTEGER PRIMARY KEY,
		scenario_id  INTEGER NOT NULL REFERENCES scenarios(id),
		seq          INTEGER NOT NULL,
		kind         TEXT NOT NULL,
		step_type    TEXT NOT NULL DEFAULT '',
		step_text    TEXT NOT NULL DEFAULT '',
		depth        INTEGER NOT NULL,
		top_level    TEXT NOT NULL DEFAULT '',
		error        TEXT NOT NULL DEFAULT '',
		recorded_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX step_events_scenario ON step_events(scenario_id, seq)`,
}

// Migrate brings the trace schema up to date. Each pending migration runs in
// its own transaction together with the version bump.
func Migrate(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for ; version < len(migrations); version++ {
		if err := apply(db, version+1, migrations[version]); err != nil {
			return err
		}
	}
	return nil
}

// schemaVersion returns the number of applied migrations, creating the
// bookkeeping table on a fresh database.
func schemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, domain.NewError("trace", "", "failed to create schema_version table", err)
	}
	if _, err := db.Exec(`INSERT INTO schema_version (version)
		SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM schema_version)`); err != nil {
		return 0, domain.NewError("trace", "", "failed to initialize schema version", err)
	}

	var version int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&version); err != nil {
		return 0, domain.NewError("trace", "", "failed to read schema version", err)
	}
	return version, nil
}

func apply(db *sql.DB, version int, stmt string) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return domain.NewError("trace", "", fmt.Sprintf("failed to begin migration %d", version), err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(stmt); err != nil {
		return domain.NewError("trace", "", fmt.Sprintf("migration %d failed", version), err)
	}
	if _, err = tx.Exec(`UPDATE schema_version SET version = ?`, version); err != nil {
		return domain.NewError("trace", "", fmt.Sprintf("failed to record schema version %d", version), err)
	}
	if err = tx.Commit(); err != nil {
		return domain.NewError("trace", "", fmt.Sprintf("failed to commit migration %d", version), err)
	}
	return nil
}
