package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/secondary"
)

// WorkflowRepository implements secondary.WorkflowRepository with SQLite.
type WorkflowRepository struct {
	db *sql.DB
}

// NewWorkflowRepository creates a new SQLite workflow repository.
func NewWorkflowRepository(db *sql.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

const workflowColumns = "id, project_id, workflow_index, workflow_name, status, updated_at"

func scanWorkflow(row rowScanner, extra ...any) (*secondary.WorkflowRecord, error) {
	var (
		record    secondary.WorkflowRecord
		updatedAt timestamp
	)
	dest := append([]any{&record.ID, &record.ProjectID, &record.WorkflowIndex, &record.WorkflowName, &record.Status, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	record.UpdatedAt = string(updatedAt)
	return &record, nil
}

// GetByID retrieves a workflow by its ID.
func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*secondary.WorkflowRecord, error) {
	record, err := scanWorkflow(r.db.QueryRowContext(ctx,
		"SELECT "+workflowColumns+" FROM project_workflows WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Workflow not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return record, nil
}

// GetByIndex retrieves a project's workflow by index.
func (r *WorkflowRepository) GetByIndex(ctx context.Context, projectID string, index int) (*secondary.WorkflowRecord, error) {
	record, err := scanWorkflow(r.db.QueryRowContext(ctx,
		"SELECT "+workflowColumns+" FROM project_workflows WHERE project_id = ? AND workflow_index = ?", projectID, index,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Workflow not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow by index: %w", err)
	}
	return record, nil
}

// ListByProject retrieves a project's workflows ordered by index.
func (r *WorkflowRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.WorkflowRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+workflowColumns+" FROM project_workflows WHERE project_id = ? ORDER BY workflow_index", projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []*secondary.WorkflowRecord
	for rows.Next() {
		record, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, record)
	}
	return workflows, rows.Err()
}

// UpdateStatus sets a workflow's status.
func (r *WorkflowRepository) UpdateStatus(ctx context.Context, id, status string) error {
	changed, err := execAffecting(ctx, r.db,
		"UPDATE project_workflows SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow status: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Workflow not found")
	}
	return nil
}

// TransitionStatus moves a workflow from one status to another in a single
// compare-and-set statement.
func (r *WorkflowRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	changed, err := execAffecting(ctx, r.db,
		"UPDATE project_workflows SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?", to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition workflow status: %w", err)
	}
	return changed, nil
}

// Aggregates returns each workflow of a project with step and score counts.
// A step counts as completed once it has a name.
func (r *WorkflowRepository) Aggregates(ctx context.Context, projectID string) ([]*secondary.WorkflowAggregateRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			pw.id, pw.project_id, pw.workflow_index, pw.workflow_name, pw.status, pw.updated_at,
			COUNT(ws.id),
			COALESCE(SUM(CASE WHEN COALESCE(ws.step_name, '') != '' THEN 1 ELSE 0 END), 0),
			COUNT(ss.id),
			COALESCE(SUM(ss.composite_score), 0),
			COALESCE(SUM(CASE WHEN ss.candidate_tier = 'autonomous' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN ss.candidate_tier = 'human_in_loop' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN ss.candidate_tier = 'human_only' THEN 1 ELSE 0 END), 0)
		FROM project_workflows pw
		LEFT JOIN workflow_steps ws ON ws.project_workflow_id = pw.id
		LEFT JOIN step_scores ss ON ss.workflow_step_id = ws.id
		WHERE pw.project_id = ?
		GROUP BY pw.id
		ORDER BY pw.workflow_index`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate workflows: %w", err)
	}
	defer rows.Close()

	var aggregates []*secondary.WorkflowAggregateRecord
	for rows.Next() {
		agg := &secondary.WorkflowAggregateRecord{}
		wf, err := scanWorkflow(rows,
			&agg.TotalSteps, &agg.CompletedSteps, &agg.ScoredSteps, &agg.CompositeSum,
			&agg.AutonomousCount, &agg.HumanInLoopCount, &agg.HumanOnlyCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow aggregate: %w", err)
		}
		agg.WorkflowRecord = *wf
		aggregates = append(aggregates, agg)
	}
	return aggregates, rows.Err()
}

var _ secondary.WorkflowRepository = (*WorkflowRepository)(nil)
