package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/secondary"
)

// StepRepository implements secondary.StepRepository with SQLite.
type StepRepository struct {
	db *sql.DB
}

// NewStepRepository creates a new SQLite step repository.
func NewStepRepository(db *sql.DB) *StepRepository {
	return &StepRepository{db: db}
}

const stepColumns = `ws.id, ws.project_workflow_id, ws.step_number, ws.step_name, ws.description, ws.role_team,
	ws.trigger_input, ws.systems_tools, ws.decision_points, ws.output_handoff, ws.pain_points,
	ws.time_effort, ws.raw_transcript, ws.created_at, ws.updated_at`

// Create inserts a step numbered one past the workflow's current maximum.
// Number assignment and insert are one statement.
func (r *StepRepository) Create(ctx context.Context, step *secondary.StepRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workflow_steps (
			id, project_workflow_id, step_number, step_name, description, role_team, trigger_input,
			systems_tools, decision_points, output_handoff, pain_points, time_effort, raw_transcript
		)
		SELECT ?, ?, COALESCE(MAX(step_number), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM workflow_steps WHERE project_workflow_id = ?`,
		step.ID, step.WorkflowID, step.StepName, step.Description, step.RoleTeam, step.TriggerInput,
		step.SystemsTools, step.DecisionPoints, step.OutputHandoff, step.PainPoints, step.TimeEffort, step.RawTranscript,
		step.WorkflowID,
	)
	if err != nil {
		return fmt.Errorf("failed to create step: %w", err)
	}

	err = r.db.QueryRowContext(ctx, "SELECT step_number FROM workflow_steps WHERE id = ?", step.ID).Scan(&step.StepNumber)
	if err != nil {
		return fmt.Errorf("failed to read step number: %w", err)
	}
	return nil
}

func scanStep(row rowScanner, extra ...any) (*secondary.StepRecord, error) {
	var (
		record               secondary.StepRecord
		name, desc, role     sql.NullString
		trigger, systems     sql.NullString
		decisions, output    sql.NullString
		pain, effort         sql.NullString
		transcript           sql.NullString
		createdAt, updatedAt timestamp
	)
	dest := append([]any{
		&record.ID, &record.WorkflowID, &record.StepNumber, &name, &desc, &role,
		&trigger, &systems, &decisions, &output, &pain,
		&effort, &transcript, &createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	record.StepName = name.String
	record.Description = desc.String
	record.RoleTeam = role.String
	record.TriggerInput = trigger.String
	record.SystemsTools = systems.String
	record.DecisionPoints = decisions.String
	record.OutputHandoff = output.String
	record.PainPoints = pain.String
	record.TimeEffort = effort.String
	record.RawTranscript = transcript.String
	record.CreatedAt = string(createdAt)
	record.UpdatedAt = string(updatedAt)
	return &record, nil
}

// GetByID retrieves a step by its ID.
func (r *StepRepository) GetByID(ctx context.Context, id string) (*secondary.StepRecord, error) {
	record, err := scanStep(r.db.QueryRowContext(ctx,
		"SELECT "+stepColumns+" FROM workflow_steps ws WHERE ws.id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Step not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get step: %w", err)
	}
	return record, nil
}

// ListByWorkflow retrieves a workflow's steps with their scores in step order.
func (r *StepRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*secondary.StepWithScore, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+stepColumns+`, `+scoreColumns+`
		FROM workflow_steps ws
		LEFT JOIN step_scores ss ON ss.workflow_step_id = ws.id
		WHERE ws.project_workflow_id = ?
		ORDER BY ws.step_number, ws.rowid`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []*secondary.StepWithScore
	for rows.Next() {
		var score nullableScore
		step, err := scanStep(rows, score.dest()...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, &secondary.StepWithScore{Step: step, Score: score.record()})
	}
	return steps, rows.Err()
}

// Update replaces every free-text field of a step.
func (r *StepRepository) Update(ctx context.Context, step *secondary.StepRecord) error {
	changed, err := execAffecting(ctx, r.db, `
		UPDATE workflow_steps SET
			step_name = ?, description = ?, role_team = ?, trigger_input = ?, systems_tools = ?,
			decision_points = ?, output_handoff = ?, pain_points = ?, time_effort = ?, raw_transcript = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		step.StepName, step.Description, step.RoleTeam, step.TriggerInput, step.SystemsTools,
		step.DecisionPoints, step.OutputHandoff, step.PainPoints, step.TimeEffort, step.RawTranscript,
		step.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update step: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Step not found")
	}
	return nil
}

// Delete removes a step; its score cascades.
func (r *StepRepository) Delete(ctx context.Context, id string) error {
	changed, err := execAffecting(ctx, r.db, "DELETE FROM workflow_steps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Step not found")
	}
	return nil
}

var _ secondary.StepRepository = (*StepRepository)(nil)
