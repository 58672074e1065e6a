package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_scored_at_to_step_scores",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_updated_at_to_dependency_gaps",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_project_name_index",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "unique_project_names",
		Up:      migrationV4,
	},
}

// LatestVersion returns the version of the newest migration.
func LatestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return v, nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("running migration", zap.Int("version", migration.Version), zap.String("name", migration.Name))

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// hasColumn reports whether table already has column.
func hasColumn(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// addTimestampColumn adds a nullable DATETIME column and backfills it.
// SQLite rejects non-constant defaults in ALTER TABLE ADD COLUMN.
func addTimestampColumn(tx *sql.Tx, table, column, backfillFrom string) error {
	exists, err := hasColumn(tx, table, column)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	if exists {
		return nil
	}
	if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s DATETIME", table, column)); err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET %s = COALESCE(%s, CURRENT_TIMESTAMP) WHERE %s IS NULL", table, column, backfillFrom, column)); err != nil {
		return fmt.Errorf("failed to backfill %s.%s: %w", table, column, err)
	}
	return nil
}

// migrationV1 records when each score was last written.
func migrationV1(tx *sql.Tx) error {
	return addTimestampColumn(tx, "step_scores", "scored_at", "NULL")
}

// migrationV2 tracks edits to dependency gaps.
func migrationV2(tx *sql.Tx) error {
	return addTimestampColumn(tx, "dependency_gaps", "updated_at", "identified_at")
}

// migrationV3 indexes project names, which join looks up.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name)")
	return err
}

// migrationV4 makes project names unique. Older databases may already hold
// duplicates; every copy but the first gets its id prefix appended.
func migrationV4(tx *sql.Tx) error {
	if _, err := tx.Exec(`UPDATE projects SET name = name || ' (' || substr(id, 1, 8) || ')'
		WHERE rowid NOT IN (SELECT MIN(rowid) FROM projects GROUP BY name)`); err != nil {
		return fmt.Errorf("failed to rename duplicate projects: %w", err)
	}
	if _, err := tx.Exec("DROP INDEX IF EXISTS idx_projects_name"); err != nil {
		return err
	}
	_, err := tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_name_unique ON projects(name)")
	return err
}
