package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/workflow"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// WorkflowServiceImpl implements the WorkflowService interface.
type WorkflowServiceImpl struct {
	workflowRepo secondary.WorkflowRepository
	stepRepo     secondary.StepRepository
	logger       *zap.Logger
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
func NewWorkflowService(workflowRepo secondary.WorkflowRepository, stepRepo secondary.StepRepository, logger *zap.Logger) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		workflowRepo: workflowRepo,
		stepRepo:     stepRepo,
		logger:       logger,
	}
}

// GetWorkflow retrieves a workflow with its steps and their scores.
func (s *WorkflowServiceImpl) GetWorkflow(ctx context.Context, workflowID string) (*primary.WorkflowDetail, error) {
	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}

	detail := &primary.WorkflowDetail{
		Workflow: *recordToWorkflow(wf),
		Steps:    make([]*primary.Step, len(steps)),
	}
	for i, st := range steps {
		detail.Steps[i] = recordToStep(st.Step, st.Score)
	}
	return detail, nil
}

// AddStep appends a step to a workflow. The workflow status is left alone;
// only editing a step moves it forward.
func (s *WorkflowServiceImpl) AddStep(ctx context.Context, workflowID string, fields primary.StepFields) (*primary.Step, error) {
	if _, err := s.workflowRepo.GetByID(ctx, workflowID); err != nil {
		return nil, err
	}

	record := &secondary.StepRecord{
		ID:         uuid.NewString(),
		WorkflowID: workflowID,
	}
	applyStepFields(record, fields)

	if err := s.stepRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create step: %w", err)
	}

	created, err := s.stepRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created step: %w", err)
	}
	return recordToStep(created, nil), nil
}

// UpdateStep replaces a step's fields and moves a not_started workflow to in_progress.
func (s *WorkflowServiceImpl) UpdateStep(ctx context.Context, stepID string, fields primary.StepFields) (*primary.Step, error) {
	record, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	applyStepFields(record, fields)
	if err := s.stepRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}

	if err := s.advanceWorkflow(ctx, record.WorkflowID); err != nil {
		return nil, err
	}

	updated, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated step: %w", err)
	}
	return recordToStep(updated, nil), nil
}

// advanceWorkflow applies the step-edit transition. The repository compares
// and sets, so a concurrent explicit status change is never overwritten.
func (s *WorkflowServiceImpl) advanceWorkflow(ctx context.Context, workflowID string) error {
	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("failed to load workflow: %w", err)
	}

	current := workflow.Status(wf.Status)
	next := workflow.StatusAfterStepEdit(current)
	if next == current {
		return nil
	}

	changed, err := s.workflowRepo.TransitionStatus(ctx, workflowID, string(current), string(next))
	if err != nil {
		return fmt.Errorf("failed to update workflow status: %w", err)
	}
	if changed {
		s.logger.Debug("workflow advanced", zap.String("workflow_id", workflowID), zap.String("status", string(next)))
	}
	return nil
}

// DeleteStep removes a step and its score.
func (s *WorkflowServiceImpl) DeleteStep(ctx context.Context, stepID string) error {
	return s.stepRepo.Delete(ctx, stepID)
}

// SetStatus sets a workflow's status explicitly.
func (s *WorkflowServiceImpl) SetStatus(ctx context.Context, workflowID, status string) (*primary.Workflow, error) {
	if err := workflow.CanSetStatus(status).Error(); err != nil {
		return nil, apperr.Validationf("%s", err)
	}
	if err := s.workflowRepo.UpdateStatus(ctx, workflowID, status); err != nil {
		return nil, err
	}

	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow: %w", err)
	}
	return recordToWorkflow(wf), nil
}

var _ primary.WorkflowService = (*WorkflowServiceImpl)(nil)
