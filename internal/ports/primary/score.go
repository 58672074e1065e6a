package primary

import (
	"context"

	"github.com/example/enscope/internal/core/report"
)

// ScoreService defines the primary port for readiness scoring.
type ScoreService interface {
	// ScoreWorkflow scores every step of a workflow through the text generator.
	// A step whose scoring fails carries an error entry; its siblings still run.
	ScoreWorkflow(ctx context.Context, workflowID string) (*BatchScoreResult, error)

	// GetWorkflowScores lists a workflow's stored scores with its tier distribution.
	GetWorkflowScores(ctx context.Context, workflowID string) (*WorkflowScores, error)

	// GetProjectScores rolls scores up per workflow and for the whole project.
	GetProjectScores(ctx context.Context, projectID string) (*ProjectScores, error)

	// ScoreStep scores an ad-hoc step without persisting anything.
	ScoreStep(ctx context.Context, req ScoreStepRequest) (*StepScoreResult, error)
}

// BatchScoreResult is the outcome of scoring one workflow.
type BatchScoreResult struct {
	WorkflowID   string              `json:"workflow_id"`
	WorkflowName string              `json:"workflow_name"`
	ScoredSteps  int                 `json:"scored_steps"`
	FailedSteps  int                 `json:"failed_steps"`
	Results      []*StepScoreOutcome `json:"results"`
}

// StepScoreOutcome is one step's entry in a batch. Exactly one of Scores
// and Error is set.
type StepScoreOutcome struct {
	StepID   string           `json:"step_id"`
	StepName string           `json:"step_name"`
	Scores   *DimensionScores `json:"scores,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// DimensionScores are the clamped dimensions with the post-penalty composite.
type DimensionScores struct {
	RuleBased          int    `json:"rule_based"`
	DataAvailability   int    `json:"data_availability"`
	ExceptionFrequency int    `json:"exception_frequency"`
	Auditability       int    `json:"auditability"`
	SpeedSensitivity   int    `json:"speed_sensitivity"`
	Composite          int    `json:"composite"`
	Tier               string `json:"tier"`
	Penalty            int    `json:"penalty"`
}

// WorkflowScores lists a workflow's scores in step order.
type WorkflowScores struct {
	WorkflowID            string                  `json:"workflow_id"`
	WorkflowName          string                  `json:"workflow_name"`
	TotalScoredSteps      int                     `json:"total_scored_steps"`
	AverageCompositeScore int                     `json:"average_composite_score"`
	TierDistribution      report.TierDistribution `json:"tier_distribution"` // percentages
	Scores                []*StepScore            `json:"scores"`
}

// StepScore is a stored score with the step it belongs to.
type StepScore struct {
	StepID     string `json:"workflow_step_id"`
	StepNumber int    `json:"step_number"`
	StepName   string `json:"step_name"`
	Score
}

// ProjectScores is the project-wide score rollup.
type ProjectScores struct {
	ProjectID       string                 `json:"project_id"`
	ProjectName     string                 `json:"project_name"`
	ClientName      string                 `json:"client_name"`
	EngagementLevel EngagementLevel        `json:"engagement_level"`
	Workflows       []*WorkflowScoreRollup `json:"workflows"`
}

// EngagementLevel aggregates every scored step in a project.
type EngagementLevel struct {
	AverageCompositeScore int                     `json:"avg_composite_score"`
	TotalScoredSteps      int                     `json:"total_scored_steps"`
	TierDistribution      report.TierDistribution `json:"tier_distribution"` // counts
	ReadinessTier         string                  `json:"readiness_tier"`
}

// WorkflowScoreRollup is one workflow's share of a project rollup.
type WorkflowScoreRollup struct {
	ID               string                  `json:"id"`
	WorkflowIndex    int                     `json:"workflow_index"`
	WorkflowName     string                  `json:"workflow_name"`
	Status           string                  `json:"status"`
	ScoredSteps      int                     `json:"scored_steps"`
	AverageComposite int                     `json:"average_composite"`
	TierDistribution report.TierDistribution `json:"tier_distribution"`
}

// ScoreStepRequest carries an unsaved step for stateless scoring.
type ScoreStepRequest struct {
	StepID       string
	WorkflowName string
	Fields       StepFields
}

// StepScoreResult is the outcome of stateless scoring.
type StepScoreResult struct {
	StepID    string          `json:"step_id,omitempty"`
	StepName  string          `json:"step_name"`
	Scores    DimensionScores `json:"scores"`
	Rationale string          `json:"rationale"`
}
