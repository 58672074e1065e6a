// Package primary defines the primary ports (driving adapters) of the application.
// The HTTP and CLI layers call these interfaces; the DTOs they exchange are
// serialized directly as API responses.
package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a project with its eight workflows and tools.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectDetail, error)

	// JoinProject looks a project up by name and verifies its passphrase.
	JoinProject(ctx context.Context, req JoinProjectRequest) (*ProjectDetail, error)

	// GetProject retrieves a project with its workflows and tools.
	GetProject(ctx context.Context, projectID string) (*ProjectDetail, error)

	// ListProjects lists all projects, newest first.
	ListProjects(ctx context.Context) ([]*Project, error)

	// ListWorkflows lists a project's workflows in index order.
	ListWorkflows(ctx context.Context, projectID string) ([]*Workflow, error)

	// UpdateProject changes project metadata after verifying the passphrase.
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*ProjectDetail, error)

	// DeleteProject removes a project and everything it owns after verifying the passphrase.
	DeleteProject(ctx context.Context, projectID, passphrase string) error

	// GetDashboard returns step counts, completion and average score for a project.
	GetDashboard(ctx context.Context, projectID string) (*Dashboard, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	Name               string
	ClientName         string
	EngagementType     string // defaults to ITOM Event Management
	TeamMembers        []string
	ObservabilityTools []string
	Passphrase         string
}

// JoinProjectRequest contains the credentials for joining a project.
type JoinProjectRequest struct {
	Name       string
	Passphrase string
}

// UpdateProjectRequest contains a partial project update.
// Empty strings and nil slices leave the field unchanged; an empty non-nil
// slice clears it.
type UpdateProjectRequest struct {
	ProjectID          string
	Passphrase         string
	Name               string
	ClientName         string
	EngagementType     string
	TeamMembers        []string
	ObservabilityTools []string
}

// Project represents a project entity at the port boundary.
type Project struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ClientName     string   `json:"client_name"`
	EngagementType string   `json:"engagement_type"`
	TeamMembers    []string `json:"team_members"`
	CreatedAt      string   `json:"created_at"`
}

// Workflow represents one of a project's eight workflows.
type Workflow struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	WorkflowIndex int    `json:"workflow_index"`
	WorkflowName  string `json:"workflow_name"`
	Status        string `json:"status"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ProjectDetail is a project with its workflows and tools.
type ProjectDetail struct {
	Project
	Workflows          []*Workflow `json:"workflows"`
	ObservabilityTools []string    `json:"observability_tools"`
}

// Dashboard is the landing view of a project.
type Dashboard struct {
	Project            *Project             `json:"project"`
	Workflows          []*DashboardWorkflow `json:"workflows"`
	ObservabilityTools []string             `json:"observability_tools"`
	Completion         DashboardCompletion  `json:"completion"`
	Scores             DashboardScores      `json:"scores"`
}

// DashboardWorkflow is a workflow with its step counts.
type DashboardWorkflow struct {
	ID             string `json:"id"`
	WorkflowIndex  int    `json:"workflow_index"`
	WorkflowName   string `json:"workflow_name"`
	Status         string `json:"status"`
	StepCount      int    `json:"step_count"`
	CompletedSteps int    `json:"completed_steps"`
}

// DashboardCompletion is the share of workflows marked complete.
type DashboardCompletion struct {
	Percentage        int `json:"percentage"`
	CompleteWorkflows int `json:"complete_workflows"`
	TotalWorkflows    int `json:"total_workflows"`
}

// DashboardScores summarises scored steps across the project.
type DashboardScores struct {
	AverageComposite int `json:"average_composite"`
	TotalScoredSteps int `json:"total_scored_steps"`
}
