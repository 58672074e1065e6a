package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/core/workflow"
)

var demoSteps = []struct {
	workflowIndex int
	number        int
	name, desc    string
	pain          string
	dims          scoring.Dimensions
}{
	{1, 1, "Receive monitoring alert", "Alerts arrive from Splunk and Dynatrace into the NOC queue", "Duplicate alerts from overlapping monitors", scoring.Dimensions{RuleBased: 5, DataAvailability: 4, ExceptionFrequency: 4, Auditability: 4, SpeedSensitivity: 5}},
	{1, 2, "Suppress known noise", "Operator checks maintenance calendar before acknowledging", "", scoring.Dimensions{RuleBased: 4, DataAvailability: 3, ExceptionFrequency: 3, Auditability: 3, SpeedSensitivity: 3}},
	{3, 1, "Look up CI in CMDB", "Analyst searches CMDB for affected configuration item", "CMDB relationships are often stale", scoring.Dimensions{RuleBased: 3, DataAvailability: 2, ExceptionFrequency: 2, Auditability: 3, SpeedSensitivity: 4}},
}

var demoGaps = []struct {
	workflowIndex int
	gapType       string
	severity      string
	description   string
}{
	{3, "cmdb", "red", "CMDB service relationships not maintained"},
	{1, "observability", "amber", "No synthetic monitoring on customer portal"},
	{5, "discovery", "green", "Discovery schedule covers all data centres"},
}

// DemoProjectName is the name of the project created by SeedDemo.
const DemoProjectName = "Demo ITOM Assessment"

// SeedDemo populates the database with a demo project that exercises steps,
// scores and gaps. passphraseHash is stored as-is. Returns the project ID.
func SeedDemo(database *sql.DB, passphraseHash string) (string, error) {
	tx, err := database.Begin()
	if err != nil {
		return "", fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRow("SELECT COUNT(*) FROM projects WHERE name = ?", DemoProjectName).Scan(&existing); err != nil {
		return "", fmt.Errorf("seed: check demo project: %w", err)
	}
	if existing > 0 {
		return "", fmt.Errorf("seed: %q already exists", DemoProjectName)
	}

	projectID := uuid.NewString()
	if _, err := tx.Exec(
		"INSERT INTO projects (id, name, client_name, engagement_type, team_members, passphrase_hash) VALUES (?, ?, ?, ?, ?, ?)",
		projectID, DemoProjectName, "Acme Corp", "ITOM Event Management", `["Alex","Sam"]`, passphraseHash,
	); err != nil {
		return "", fmt.Errorf("seed project: %w", err)
	}

	for _, tool := range []string{"Splunk", "ServiceNow", "Dynatrace"} {
		if _, err := tx.Exec(
			"INSERT INTO observability_tools (id, project_id, tool_name) VALUES (?, ?, ?)",
			uuid.NewString(), projectID, tool,
		); err != nil {
			return "", fmt.Errorf("seed tools: %w", err)
		}
	}

	workflowIDs := make(map[int]string, workflow.Count)
	for i, name := range workflow.Names() {
		id := uuid.NewString()
		workflowIDs[i+1] = id
		if _, err := tx.Exec(
			"INSERT INTO project_workflows (id, project_id, workflow_index, workflow_name, status) VALUES (?, ?, ?, ?, 'not_started')",
			id, projectID, i+1, name,
		); err != nil {
			return "", fmt.Errorf("seed workflows: %w", err)
		}
	}

	var penaltyGaps []scoring.Gap
	for _, g := range demoGaps {
		penaltyGaps = append(penaltyGaps, scoring.Gap{WorkflowIndex: g.workflowIndex, Type: g.gapType, Severity: g.severity})
	}

	for _, s := range demoSteps {
		stepID := uuid.NewString()
		if _, err := tx.Exec(
			"INSERT INTO workflow_steps (id, project_workflow_id, step_number, step_name, description, pain_points) VALUES (?, ?, ?, ?, ?, ?)",
			stepID, workflowIDs[s.workflowIndex], s.number, s.name, s.desc, s.pain,
		); err != nil {
			return "", fmt.Errorf("seed steps: %w", err)
		}
		result := scoring.Aggregate(s.dims, s.workflowIndex, penaltyGaps, scoring.DefaultPenaltyPolicy())
		d := result.Dimensions
		if _, err := tx.Exec(
			`INSERT INTO step_scores (id, workflow_step_id, rule_based_score, data_availability_score, exception_frequency_score,
				auditability_score, speed_sensitivity_score, composite_score, candidate_tier, score_rationale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), stepID, d.RuleBased, d.DataAvailability, d.ExceptionFrequency, d.Auditability, d.SpeedSensitivity,
			result.Composite, string(result.Tier), "Seeded demo score",
		); err != nil {
			return "", fmt.Errorf("seed scores: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE project_workflows SET status = 'in_progress' WHERE id = ?",
			workflowIDs[s.workflowIndex],
		); err != nil {
			return "", fmt.Errorf("seed workflow status: %w", err)
		}
	}

	for _, g := range demoGaps {
		if _, err := tx.Exec(
			"INSERT INTO dependency_gaps (id, project_id, workflow_index, gap_type, severity, description) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), projectID, g.workflowIndex, g.gapType, g.severity, g.description,
		); err != nil {
			return "", fmt.Errorf("seed gaps: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("seed: commit: %w", err)
	}
	return projectID, nil
}
