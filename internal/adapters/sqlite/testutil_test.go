// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files; use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/enscope/internal/core/workflow"
	"github.com/example/enscope/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema
// and foreign keys enforced.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", db.DSN(db.MemoryPath))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// a second pooled connection would open a different empty database
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a project with its eight workflows, IDs "<id>-wf<n>".
func seedProject(t *testing.T, testDB *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "proj-1"
	}
	if name == "" {
		name = "Test Project"
	}
	_, err := testDB.Exec(
		"INSERT INTO projects (id, name, client_name, passphrase_hash) VALUES (?, ?, 'Acme', 'hash')",
		id, name,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	for i, wfName := range workflow.Names() {
		_, err := testDB.Exec(
			"INSERT INTO project_workflows (id, project_id, workflow_index, workflow_name) VALUES (?, ?, ?, ?)",
			wfID(id, i+1), id, i+1, wfName,
		)
		if err != nil {
			t.Fatalf("failed to seed workflow: %v", err)
		}
	}
	return id
}

func wfID(projectID string, index int) string {
	return fmt.Sprintf("%s-wf%d", projectID, index)
}

// seedStep inserts a step and returns its ID.
func seedStep(t *testing.T, testDB *sql.DB, id, workflowID string, number int, name string) string {
	t.Helper()
	_, err := testDB.Exec(
		"INSERT INTO workflow_steps (id, project_workflow_id, step_number, step_name) VALUES (?, ?, ?, ?)",
		id, workflowID, number, name,
	)
	if err != nil {
		t.Fatalf("failed to seed step: %v", err)
	}
	return id
}

// seedScore inserts a score for a step.
func seedScore(t *testing.T, testDB *sql.DB, stepID string, composite int, tier string) {
	t.Helper()
	_, err := testDB.Exec(
		`INSERT INTO step_scores (id, workflow_step_id, rule_based_score, data_availability_score, exception_frequency_score,
			auditability_score, speed_sensitivity_score, composite_score, candidate_tier, score_rationale)
		VALUES (?, ?, 3, 3, 3, 3, 3, ?, ?, 'seeded')`,
		"score-"+stepID, stepID, composite, tier,
	)
	if err != nil {
		t.Fatalf("failed to seed score: %v", err)
	}
}

// seedGap inserts a gap and returns its ID.
func seedGap(t *testing.T, testDB *sql.DB, id, projectID string, workflowIndex int, gapType, severity string) string {
	t.Helper()
	_, err := testDB.Exec(
		"INSERT INTO dependency_gaps (id, project_id, workflow_index, gap_type, severity, description) VALUES (?, ?, ?, ?, ?, ?)",
		id, projectID, workflowIndex, gapType, severity, "gap "+id,
	)
	if err != nil {
		t.Fatalf("failed to seed gap: %v", err)
	}
	return id
}

func countRows(t *testing.T, testDB *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := testDB.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}
