package primary

import (
	"context"
	"time"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
)

// ReportService defines the primary port for reports and exports.
type ReportService interface {
	// GetWorkflowReport reports one workflow, addressed by project and index.
	GetWorkflowReport(ctx context.Context, projectID string, workflowIndex int) (*WorkflowReport, error)

	// GetProjectReport rolls every workflow of a project up into one report.
	GetProjectReport(ctx context.Context, projectID string) (*ProjectReport, error)

	// GetExecutiveReport is the project report plus an LLM executive summary.
	// A failed summary is recorded in SummaryError; the report is still returned.
	GetExecutiveReport(ctx context.Context, projectID string) (*ExecutiveReport, error)

	// GetStepRows returns every step of a project in workflow and step order, for exports.
	GetStepRows(ctx context.Context, projectID string) ([]*StepRow, error)
}

// WorkflowReport reports one workflow.
type WorkflowReport struct {
	WorkflowID     string        `json:"workflow_id"`
	WorkflowIndex  int           `json:"workflow_index"`
	WorkflowName   string        `json:"workflow_name"`
	Status         string        `json:"status"`
	Statistics     report.Stats  `json:"statistics"`
	Steps          []*ReportStep `json:"steps"`
	DependencyGaps []*Gap        `json:"dependency_gaps"`
}

// ReportStep is a step as it appears in a report.
type ReportStep struct {
	StepNumber     int           `json:"step_number"`
	StepName       string        `json:"step_name"`
	Description    string        `json:"description"`
	RoleTeam       string        `json:"role_team"`
	SystemsTools   string        `json:"systems_tools"`
	DecisionPoints string        `json:"decision_points"`
	PainPoints     string        `json:"pain_points"`
	Scores         *ReportScores `json:"scores"`
}

// ReportScores is a scored step's dimensions, composite and rationale.
type ReportScores struct {
	DimensionScores
	Rationale string `json:"rationale"`
}

// ProjectReport is the engagement rollup of a project.
type ProjectReport struct {
	ProjectID             string                  `json:"project_id"`
	ProjectName           string                  `json:"project_name"`
	ClientName            string                  `json:"client_name"`
	EngagementType        string                  `json:"engagement_type"`
	CreatedAt             string                  `json:"created_at"`
	Statistics            report.Project          `json:"statistics"`
	DependencyGapsSummary map[gap.Type]gap.Counts `json:"dependency_gaps_summary"`
	ObservabilityTools    []string                `json:"observability_tools"`
	Workflows             []*WorkflowRollup       `json:"workflows"`
}

// WorkflowRollup is one workflow's line in a project report.
type WorkflowRollup struct {
	ID               string                  `json:"id"`
	WorkflowIndex    int                     `json:"workflow_index"`
	WorkflowName     string                  `json:"workflow_name"`
	Status           string                  `json:"status"`
	TotalSteps       int                     `json:"total_steps"`
	CompletedSteps   int                     `json:"completed_steps"`
	ScoredSteps      int                     `json:"scored_steps"`
	AverageComposite int                     `json:"average_composite"`
	TierDistribution report.TierDistribution `json:"tier_distribution"`
}

// ExecutiveReport is a project report with a generated executive summary.
type ExecutiveReport struct {
	Report       *ProjectReport
	Summary      string
	SummaryError string
	GeneratedAt  time.Time
}

// StepRow is a flattened step for tabular exports.
type StepRow struct {
	WorkflowIndex int
	WorkflowName  string
	StepNumber    int
	StepFields
	Score *Score
}
