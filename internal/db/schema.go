package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after all migrations.
//
// # Schema Drift Protection
//
// This is the single source of truth for the database schema. Repository
// tests load it through GetSchemaSQL() instead of declaring their own tables,
// so a column referenced by repository code but missing here fails the tests
// with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run the sqlite adapter tests
const SchemaSQL = `
-- Projects (one engagement, guarded by a passphrase)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	client_name TEXT NOT NULL,
	engagement_type TEXT NOT NULL DEFAULT 'ITOM Event Management',
	team_members TEXT NOT NULL DEFAULT '[]',
	passphrase_hash TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS observability_tools (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	tool_name TEXT NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Workflows (exactly eight per project, fixed names)
CREATE TABLE IF NOT EXISTS project_workflows (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	workflow_index INTEGER NOT NULL CHECK(workflow_index BETWEEN 1 AND 8),
	workflow_name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'not_started' CHECK(status IN ('not_started', 'in_progress', 'complete')),
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	UNIQUE(project_id, workflow_index)
);

-- Steps (interview answers)
CREATE TABLE IF NOT EXISTS workflow_steps (
	id TEXT PRIMARY KEY,
	project_workflow_id TEXT NOT NULL,
	step_number INTEGER NOT NULL,
	step_name TEXT DEFAULT '',
	description TEXT DEFAULT '',
	role_team TEXT DEFAULT '',
	trigger_input TEXT DEFAULT '',
	systems_tools TEXT DEFAULT '',
	decision_points TEXT DEFAULT '',
	output_handoff TEXT DEFAULT '',
	pain_points TEXT DEFAULT '',
	time_effort TEXT DEFAULT '',
	raw_transcript TEXT DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_workflow_id) REFERENCES project_workflows(id) ON DELETE CASCADE
);

-- Scores (at most one per step)
CREATE TABLE IF NOT EXISTS step_scores (
	id TEXT PRIMARY KEY,
	workflow_step_id TEXT NOT NULL UNIQUE,
	rule_based_score INTEGER DEFAULT 0 CHECK(rule_based_score BETWEEN 0 AND 5),
	data_availability_score INTEGER DEFAULT 0 CHECK(data_availability_score BETWEEN 0 AND 5),
	exception_frequency_score INTEGER DEFAULT 0 CHECK(exception_frequency_score BETWEEN 0 AND 5),
	auditability_score INTEGER DEFAULT 0 CHECK(auditability_score BETWEEN 0 AND 5),
	speed_sensitivity_score INTEGER DEFAULT 0 CHECK(speed_sensitivity_score BETWEEN 0 AND 5),
	composite_score INTEGER DEFAULT 0,
	candidate_tier TEXT DEFAULT 'human_only' CHECK(candidate_tier IN ('autonomous', 'human_in_loop', 'human_only')),
	score_rationale TEXT DEFAULT '',
	scored_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (workflow_step_id) REFERENCES workflow_steps(id) ON DELETE CASCADE
);

-- Dependency gaps (CMDB, discovery, observability readiness)
CREATE TABLE IF NOT EXISTS dependency_gaps (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	workflow_index INTEGER NOT NULL,
	gap_type TEXT NOT NULL CHECK(gap_type IN ('cmdb', 'discovery', 'observability', 'other')),
	severity TEXT NOT NULL CHECK(severity IN ('red', 'amber', 'green')),
	description TEXT NOT NULL,
	identified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_name_unique ON projects(name);
CREATE INDEX IF NOT EXISTS idx_project_workflows_project ON project_workflows(project_id);
CREATE INDEX IF NOT EXISTS idx_workflow_steps_workflow ON workflow_steps(project_workflow_id);
CREATE INDEX IF NOT EXISTS idx_step_scores_step ON step_scores(workflow_step_id);
CREATE INDEX IF NOT EXISTS idx_dependency_gaps_project ON dependency_gaps(project_id);
CREATE INDEX IF NOT EXISTS idx_observability_tools_project ON observability_tools(project_id);
`

// InitSchema brings the database schema up to date.
//
// A database without a schema_version table is either brand new (the full
// schema is created and every migration marked applied) or was created by an
// earlier release that never tracked versions (all migrations run).
func InitSchema(db *sql.DB, logger *zap.Logger) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if tableCount > 0 {
		return RunMigrations(db, logger)
	}

	var legacyCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='projects'").Scan(&legacyCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if legacyCount > 0 {
		logger.Info("upgrading unversioned database")
		return RunMigrations(db, logger)
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	logger.Debug("created fresh schema", zap.Int("version", LatestVersion()))
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
