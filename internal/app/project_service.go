package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/project"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/core/workflow"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	workflowRepo secondary.WorkflowRepository
	hasher       secondary.PassphraseHasher
	logger       *zap.Logger
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	projectRepo secondary.ProjectRepository,
	workflowRepo secondary.WorkflowRepository,
	hasher secondary.PassphraseHasher,
	logger *zap.Logger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo:  projectRepo,
		workflowRepo: workflowRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

// CreateProject creates a project with its eight workflows and tools.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.ProjectDetail, error) {
	taken := false
	if strings.TrimSpace(req.Name) != "" {
		exists, err := s.projectRepo.NameExists(ctx, req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check project name: %w", err)
		}
		taken = exists
	}

	guard := project.CanCreateProject(project.CreateContext{
		Name:       req.Name,
		ClientName: req.ClientName,
		Passphrase: req.Passphrase,
		NameTaken:  taken,
	})
	if err := guard.Error(); err != nil {
		return nil, apperr.Validationf("%s", err)
	}

	hash, err := s.hasher.Hash(req.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passphrase: %w", err)
	}
	team, err := encodeTeamMembers(req.TeamMembers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team members: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:             uuid.NewString(),
		Name:           req.Name,
		ClientName:     req.ClientName,
		EngagementType: project.EngagementTypeOrDefault(req.EngagementType),
		TeamMembers:    team,
		PassphraseHash: hash,
	}

	workflows := make([]*secondary.WorkflowRecord, 0, workflow.Count)
	for i, name := range workflow.Names() {
		workflows = append(workflows, &secondary.WorkflowRecord{
			ID:            uuid.NewString(),
			ProjectID:     record.ID,
			WorkflowIndex: i + 1,
			WorkflowName:  name,
			Status:        string(workflow.StatusNotStarted),
		})
	}

	if err := s.projectRepo.CreateWithWorkflows(ctx, record, workflows, project.NormalizeTools(req.ObservabilityTools)); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", zap.String("project_id", record.ID), zap.String("name", record.Name))

	return s.GetProject(ctx, record.ID)
}

// JoinProject looks a project up by name and verifies its passphrase.
func (s *ProjectServiceImpl) JoinProject(ctx context.Context, req primary.JoinProjectRequest) (*primary.ProjectDetail, error) {
	if err := project.CanJoinProject(req.Name, req.Passphrase).Error(); err != nil {
		return nil, apperr.Validationf("%s", err)
	}

	record, err := s.projectRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(record.PassphraseHash, req.Passphrase) {
		return nil, apperr.Unauthorizedf("Invalid passphrase")
	}

	return s.detail(ctx, record)
}

// GetProject retrieves a project with its workflows and tools.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.ProjectDetail, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, record)
}

// ListProjects lists all projects, newest first.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// ListWorkflows lists a project's workflows in index order.
func (s *ProjectServiceImpl) ListWorkflows(ctx context.Context, projectID string) ([]*primary.Workflow, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.workflows(ctx, projectID)
}

// UpdateProject changes project metadata after verifying the passphrase.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.ProjectDetail, error) {
	record, err := s.authorize(ctx, req.ProjectID, req.Passphrase)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" && req.Name != record.Name {
		exists, err := s.projectRepo.NameExists(ctx, req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check project name: %w", err)
		}
		if exists {
			return nil, apperr.Validationf("A project named %q already exists", req.Name)
		}
		record.Name = req.Name
	}
	if strings.TrimSpace(req.ClientName) != "" {
		record.ClientName = req.ClientName
	}
	if strings.TrimSpace(req.EngagementType) != "" {
		record.EngagementType = req.EngagementType
	}
	if req.TeamMembers != nil {
		team, err := encodeTeamMembers(req.TeamMembers)
		if err != nil {
			return nil, fmt.Errorf("failed to encode team members: %w", err)
		}
		record.TeamMembers = team
	}

	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if req.ObservabilityTools != nil {
		if err := s.projectRepo.ReplaceTools(ctx, record.ID, project.NormalizeTools(req.ObservabilityTools)); err != nil {
			return nil, fmt.Errorf("failed to update tools: %w", err)
		}
	}

	return s.GetProject(ctx, record.ID)
}

// DeleteProject removes a project and everything it owns after verifying the passphrase.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectID, passphrase string) error {
	if _, err := s.authorize(ctx, projectID, passphrase); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.logger.Info("project deleted", zap.String("project_id", projectID))
	return nil
}

// GetDashboard returns step counts, completion and average score for a project.
func (s *ProjectServiceImpl) GetDashboard(ctx context.Context, projectID string) (*primary.Dashboard, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	aggregates, err := s.workflowRepo.Aggregates(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate workflows: %w", err)
	}
	tools, err := s.projectRepo.ListTools(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	dashboard := &primary.Dashboard{
		Project:            recordToProject(record),
		Workflows:          make([]*primary.DashboardWorkflow, 0, len(aggregates)),
		ObservabilityTools: tools,
	}

	complete, scored, compositeSum := 0, 0, 0
	for _, a := range aggregates {
		dashboard.Workflows = append(dashboard.Workflows, &primary.DashboardWorkflow{
			ID:             a.ID,
			WorkflowIndex:  a.WorkflowIndex,
			WorkflowName:   a.WorkflowName,
			Status:         a.Status,
			StepCount:      a.TotalSteps,
			CompletedSteps: a.CompletedSteps,
		})
		if a.Status == string(workflow.StatusComplete) {
			complete++
		}
		scored += a.ScoredSteps
		compositeSum += a.CompositeSum
	}

	dashboard.Completion = primary.DashboardCompletion{
		Percentage:        workflow.CompletionPercentage(complete, len(aggregates)),
		CompleteWorkflows: complete,
		TotalWorkflows:    len(aggregates),
	}
	dashboard.Scores = primary.DashboardScores{
		AverageComposite: report.RoundedAverage(compositeSum, scored),
		TotalScoredSteps: scored,
	}
	return dashboard, nil
}

// authorize loads a project and checks the supplied passphrase against it.
func (s *ProjectServiceImpl) authorize(ctx context.Context, projectID, passphrase string) (*secondary.ProjectRecord, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if passphrase == "" {
		return nil, apperr.Unauthorizedf("Passphrase required")
	}
	if !s.hasher.Matches(record.PassphraseHash, passphrase) {
		return nil, apperr.Unauthorizedf("Invalid passphrase")
	}
	return record, nil
}

func (s *ProjectServiceImpl) detail(ctx context.Context, record *secondary.ProjectRecord) (*primary.ProjectDetail, error) {
	workflows, err := s.workflows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	tools, err := s.projectRepo.ListTools(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return &primary.ProjectDetail{
		Project:            *recordToProject(record),
		Workflows:          workflows,
		ObservabilityTools: tools,
	}, nil
}

func (s *ProjectServiceImpl) workflows(ctx context.Context, projectID string) ([]*primary.Workflow, error) {
	records, err := s.workflowRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	workflows := make([]*primary.Workflow, len(records))
	for i, r := range records {
		workflows[i] = recordToWorkflow(r)
	}
	return workflows, nil
}

var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
