package primary

import "context"

// WorkflowService defines the primary port for workflow and step operations.
type WorkflowService interface {
	// GetWorkflow retrieves a workflow with its steps and their scores.
	GetWorkflow(ctx context.Context, workflowID string) (*WorkflowDetail, error)

	// AddStep appends a step to a workflow with the next step number.
	AddStep(ctx context.Context, workflowID string, fields StepFields) (*Step, error)

	// UpdateStep replaces a step's fields and moves a not_started workflow to in_progress.
	UpdateStep(ctx context.Context, stepID string, fields StepFields) (*Step, error)

	// DeleteStep removes a step and its score.
	DeleteStep(ctx context.Context, stepID string) error

	// SetStatus sets a workflow's status explicitly.
	SetStatus(ctx context.Context, workflowID, status string) (*Workflow, error)
}

// StepFields are the interview answers recorded for a step.
type StepFields struct {
	StepName       string `json:"step_name"`
	Description    string `json:"description"`
	RoleTeam       string `json:"role_team"`
	TriggerInput   string `json:"trigger_input"`
	SystemsTools   string `json:"systems_tools"`
	DecisionPoints string `json:"decision_points"`
	OutputHandoff  string `json:"output_handoff"`
	PainPoints     string `json:"pain_points"`
	TimeEffort     string `json:"time_effort"`
	RawTranscript  string `json:"raw_transcript"`
}

// Step represents a workflow step. Score is nil until the step is scored.
type Step struct {
	ID         string `json:"id"`
	WorkflowID string `json:"project_workflow_id"`
	StepNumber int    `json:"step_number"`
	StepFields
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Score     *Score `json:"score"`
}

// Score is the stored readiness score of a step.
type Score struct {
	RuleBased          int    `json:"rule_based_score"`
	DataAvailability   int    `json:"data_availability_score"`
	ExceptionFrequency int    `json:"exception_frequency_score"`
	Auditability       int    `json:"auditability_score"`
	SpeedSensitivity   int    `json:"speed_sensitivity_score"`
	Composite          int    `json:"composite_score"`
	Tier               string `json:"candidate_tier"`
	Rationale          string `json:"score_rationale"`
	ScoredAt           string `json:"scored_at,omitempty"`
}

// WorkflowDetail is a workflow with its ordered steps.
type WorkflowDetail struct {
	Workflow
	Steps []*Step `json:"steps"`
}
